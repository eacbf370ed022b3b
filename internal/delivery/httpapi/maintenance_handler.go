package httpapi

import (
	"context"
	"net/http"

	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/security"
	"github.com/cashupay/cashu-gateway-service/internal/usecase"
)

type MaintenanceHandler struct {
	maintenanceUsecase usecase.MaintenanceUsecase
	key                *security.InternalKey
}

func NewMaintenanceHandler(maintenanceUsecase usecase.MaintenanceUsecase, key *security.InternalKey) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceUsecase: maintenanceUsecase,
		key:                key,
	}
}

// Sync answers before the sweep runs. The trigger that calls this endpoint
// uses a timeout far shorter than a sweep, so the work happens detached from
// the request.
func (h *MaintenanceHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if !h.key.Verify(r.Header.Get("X-Internal-Key")) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid internal key"})
		return
	}

	go h.maintenanceUsecase.RunSync(context.Background())

	w.WriteHeader(http.StatusAccepted)
}
