package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/usecase"
	storedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/store"
)

type StoreHandler struct {
	storeUsecase usecase.StoreUsecase
}

func NewStoreHandler(storeUsecase usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{storeUsecase: storeUsecase}
}

type createStoreRequest struct {
	Name                  string  `json:"name"`
	MintURL               string  `json:"mintUrl"`
	MintUnit              string  `json:"mintUnit"`
	Seed                  string  `json:"seed"`
	ExchangeFeePercent    float64 `json:"exchangeFeePercent"`
	PriceProvider         string  `json:"priceProvider"`
	FallbackPriceProvider string  `json:"fallbackPriceProvider"`
}

type updateStoreRequest struct {
	Name                  string   `json:"name"`
	MintURL               string   `json:"mintUrl"`
	MintUnit              string   `json:"mintUnit"`
	ExchangeFeePercent    *float64 `json:"exchangeFeePercent"`
	PriceProvider         *string  `json:"priceProvider"`
	FallbackPriceProvider *string  `json:"fallbackPriceProvider"`
}

type storeResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	MintURL               string    `json:"mintUrl"`
	MintUnit              string    `json:"mintUnit"`
	ExchangeFeePercent    float64   `json:"exchangeFeePercent"`
	PriceProvider         string    `json:"priceProvider,omitempty"`
	FallbackPriceProvider string    `json:"fallbackPriceProvider,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// the seed never appears in responses
func toStoreResponse(store *domain.Store) storeResponse {
	return storeResponse{
		ID:                    store.ID,
		Name:                  store.Name,
		MintURL:               store.MintURL,
		MintUnit:              store.MintUnit,
		ExchangeFeePercent:    store.ExchangeFeePercent,
		PriceProvider:         store.PriceProvider,
		FallbackPriceProvider: store.FallbackPriceProvider,
		CreatedAt:             store.CreatedAt,
		UpdatedAt:             store.UpdatedAt,
	}
}

func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	store, err := h.storeUsecase.CreateStore(&storedto.CreateStoreInput{
		Name:                  req.Name,
		MintURL:               req.MintURL,
		MintUnit:              req.MintUnit,
		Seed:                  req.Seed,
		ExchangeFeePercent:    req.ExchangeFeePercent,
		PriceProvider:         req.PriceProvider,
		FallbackPriceProvider: req.FallbackPriceProvider,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStoreResponse(store))
}

func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	var req updateStoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	store, err := h.storeUsecase.UpdateStore(&storedto.UpdateStoreInput{
		StoreID:               r.PathValue("storeId"),
		Name:                  req.Name,
		MintURL:               req.MintURL,
		MintUnit:              req.MintUnit,
		ExchangeFeePercent:    req.ExchangeFeePercent,
		PriceProvider:         req.PriceProvider,
		FallbackPriceProvider: req.FallbackPriceProvider,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(store))
}

func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	if err := h.storeUsecase.DeleteStore(r.PathValue("storeId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeUsecase.GetStoreByID(r.PathValue("storeId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoreResponse(store))
}

func (h *StoreHandler) GetStores(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationParams(r)
	stores, err := h.storeUsecase.GetStores(page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		responses = append(responses, toStoreResponse(store))
	}
	writeJSON(w, http.StatusOK, responses)
}

func paginationParams(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32)
	return int32(page), int32(limit)
}
