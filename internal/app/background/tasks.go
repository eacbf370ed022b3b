package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/usecase"
)

type BackgroundTasks struct {
	MaintenanceUsecase usecase.MaintenanceUsecase
	RateUsecase        usecase.RateUsecase
}

func NewBackgroundTasks(maintenanceUC usecase.MaintenanceUsecase, rateUC usecase.RateUsecase) *BackgroundTasks {
	return &BackgroundTasks{
		MaintenanceUsecase: maintenanceUC,
		RateUsecase:        rateUC,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startMaintenanceSync(ctx)
	go bt.startRateRefresh(ctx)
}

// The sync interval throttling lives in the maintenance usecase, so the
// ticker can fire often without causing back-to-back sweeps.
func (bt *BackgroundTasks) startMaintenanceSync(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.MaintenanceUsecase.RunSync(ctx)
		}
	}
}

func (bt *BackgroundTasks) startRateRefresh(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.RateUsecase.RefreshStaleRates(ctx); err != nil {
				slog.Error("rate refresh failed", "error", err)
			}
		}
	}
}
