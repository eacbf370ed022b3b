package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/metrics"
)

// InvoiceSweeper reconciles every open invoice against its mint.
type InvoiceSweeper interface {
	SweepPendingInvoices(ctx context.Context) error
}

type RateRefresher interface {
	RefreshStaleRates(ctx context.Context) error
}

type MaintenanceUsecase interface {
	// RunSync performs a sweep unless one ran within the sync interval.
	// It reports whether the sweep was actually executed.
	RunSync(ctx context.Context) bool
}

type DefaultMaintenanceUsecase struct {
	sweeper      InvoiceSweeper
	rates        RateRefresher
	metrics      *metrics.GatewayMetrics
	syncInterval time.Duration

	mu       sync.Mutex
	lastSync time.Time
}

func NewDefaultMaintenanceUsecase(
	sweeper InvoiceSweeper,
	rates RateRefresher,
	metrics *metrics.GatewayMetrics,
	syncInterval time.Duration) *DefaultMaintenanceUsecase {

	return &DefaultMaintenanceUsecase{
		sweeper:      sweeper,
		rates:        rates,
		metrics:      metrics,
		syncInterval: syncInterval,
	}
}

func (uc *DefaultMaintenanceUsecase) RunSync(ctx context.Context) bool {
	if !uc.tryAcquire() {
		slog.Debug("maintenance sync skipped, last run too recent")
		return false
	}

	slog.Info("maintenance sync started")

	if err := uc.sweeper.SweepPendingInvoices(ctx); err != nil {
		slog.Error("invoice sweep failed", "error", err)
	}
	if err := uc.rates.RefreshStaleRates(ctx); err != nil {
		slog.Error("rate refresh failed", "error", err)
	}

	if uc.metrics != nil {
		uc.metrics.MaintenanceSweepsTotal.Inc()
	}

	slog.Info("maintenance sync finished")
	return true
}

func (uc *DefaultMaintenanceUsecase) tryAcquire() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := time.Now()
	if now.Sub(uc.lastSync) < uc.syncInterval {
		return false
	}
	uc.lastSync = now
	return true
}
