package httpapi

import (
	"net/http"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/usecase"
	webhookdto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/webhook"
)

type WebhookHandler struct {
	webhookUsecase usecase.WebhookUsecase
	dispatcher     usecase.WebhookDispatcher
}

func NewWebhookHandler(webhookUsecase usecase.WebhookUsecase, dispatcher usecase.WebhookDispatcher) *WebhookHandler {
	return &WebhookHandler{
		webhookUsecase: webhookUsecase,
		dispatcher:     dispatcher,
	}
}

type createWebhookRequest struct {
	URL     string   `json:"url"`
	Events  []string `json:"events"`
	Enabled *bool    `json:"enabled"`
}

type updateWebhookRequest struct {
	URL     string   `json:"url"`
	Events  []string `json:"events"`
	Enabled *bool    `json:"enabled"`
}

type webhookResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createWebhookResponse struct {
	webhookResponse
	// shown once, never retrievable afterwards
	Secret string `json:"secret"`
}

type deliveryResponse struct {
	ID                 string    `json:"id"`
	WebhookID          string    `json:"webhookId"`
	InvoiceID          string    `json:"invoiceId"`
	EventType          string    `json:"eventType"`
	Payload            string    `json:"payload"`
	OriginalDeliveryID string    `json:"originalDeliveryId"`
	IsRedelivery       bool      `json:"isRedelivery"`
	HTTPStatus         int       `json:"httpStatus"`
	ResponseBody       string    `json:"responseBody,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type redeliverResponse struct {
	Delivered bool `json:"delivered"`
}

func toWebhookResponse(webhook *domain.Webhook) webhookResponse {
	events := make([]string, 0, len(webhook.Events))
	for _, e := range webhook.Events {
		events = append(events, string(e))
	}
	return webhookResponse{
		ID:        webhook.ID,
		StoreID:   webhook.StoreID,
		URL:       webhook.URL,
		Events:    events,
		Enabled:   webhook.Enabled,
		CreatedAt: webhook.CreatedAt,
		UpdatedAt: webhook.UpdatedAt,
	}
}

func toEventTypes(events []string) []domain.EventType {
	if events == nil {
		return nil
	}
	types := make([]domain.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, domain.EventType(e))
	}
	return types
}

func (h *WebhookHandler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req createWebhookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	output, err := h.webhookUsecase.CreateWebhook(&webhookdto.CreateWebhookInput{
		StoreID: r.PathValue("storeId"),
		URL:     req.URL,
		Events:  toEventTypes(req.Events),
		Enabled: enabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createWebhookResponse{
		webhookResponse: toWebhookResponse(output.Webhook),
		Secret:          output.Secret,
	})
}

func (h *WebhookHandler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	var req updateWebhookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.webhookUsecase.UpdateWebhook(&webhookdto.UpdateWebhookInput{
		WebhookID: r.PathValue("webhookId"),
		URL:       req.URL,
		Events:    toEventTypes(req.Events),
		Enabled:   req.Enabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	webhook, err := h.webhookUsecase.GetWebhookByID(r.PathValue("webhookId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWebhookResponse(webhook))
}

func (h *WebhookHandler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.webhookUsecase.DeleteWebhook(r.PathValue("webhookId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WebhookHandler) GetWebhook(w http.ResponseWriter, r *http.Request) {
	webhook, err := h.webhookUsecase.GetWebhookByID(r.PathValue("webhookId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWebhookResponse(webhook))
}

func (h *WebhookHandler) GetStoreWebhooks(w http.ResponseWriter, r *http.Request) {
	webhooks, err := h.webhookUsecase.GetStoreWebhooks(r.PathValue("storeId"))
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]webhookResponse, 0, len(webhooks))
	for _, webhook := range webhooks {
		responses = append(responses, toWebhookResponse(webhook))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *WebhookHandler) GetWebhookDeliveries(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationParams(r)
	deliveries, total, err := h.webhookUsecase.GetWebhookDeliveries(r.PathValue("webhookId"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]deliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		responses = append(responses, deliveryResponse{
			ID:                 d.ID,
			WebhookID:          d.WebhookID,
			InvoiceID:          d.InvoiceID,
			EventType:          string(d.EventType),
			Payload:            d.Payload,
			OriginalDeliveryID: d.OriginalDeliveryID,
			IsRedelivery:       d.IsRedelivery,
			HTTPStatus:         d.HTTPStatus,
			ResponseBody:       d.ResponseBody,
			CreatedAt:          d.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deliveries": responses,
		"totalItems": total,
	})
}

func (h *WebhookHandler) RedeliverWebhook(w http.ResponseWriter, r *http.Request) {
	delivered, err := h.dispatcher.Redeliver(r.PathValue("deliveryId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, redeliverResponse{Delivered: delivered})
}
