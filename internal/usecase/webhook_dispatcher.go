package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/metrics"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/notifier"
)

// WebhookPayload is the versioned body POSTed to merchant endpoints. The
// signature covers these exact marshalled bytes, so field order and shape are
// part of the contract.
type WebhookPayload struct {
	DeliveryID         string           `json:"deliveryId"`
	WebhookID          string           `json:"webhookId"`
	OriginalDeliveryID string           `json:"originalDeliveryId"`
	IsRedelivery       bool             `json:"isRedelivery"`
	Type               domain.EventType `json:"type"`
	Timestamp          int64            `json:"timestamp"`
	StoreID            string           `json:"storeId"`
	InvoiceID          string           `json:"invoiceId"`
	Metadata           *InvoiceMetadata `json:"metadata,omitempty"`
}

type InvoiceMetadata struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	AdditionalStatus string `json:"additionalStatus,omitempty"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	AmountSats       uint64 `json:"amountSats"`
	CreatedAt        int64  `json:"createdAt"`
	ExpiresAt        int64  `json:"expiresAt"`
}

type WebhookDispatcher interface {
	// FireEvent delivers the event to every enabled, subscribed webhook of
	// the store. Attempts run independently; failures are logged to the
	// audit trail and never surface to the caller.
	FireEvent(storeID string, eventType domain.EventType, invoice *domain.Invoice)
	// Redeliver re-attempts a past delivery, reporting whether the endpoint
	// answered 2xx.
	Redeliver(deliveryID string) (bool, error)
}

type DefaultWebhookDispatcher struct {
	webhookRepo  domain.WebhookRepository
	deliveryRepo domain.WebhookDeliveryRepository
	sender       *notifier.WebhookSender
	metrics      *metrics.GatewayMetrics
}

func NewDefaultWebhookDispatcher(
	webhookRepo domain.WebhookRepository,
	deliveryRepo domain.WebhookDeliveryRepository,
	sender *notifier.WebhookSender,
	gatewayMetrics *metrics.GatewayMetrics) *DefaultWebhookDispatcher {

	return &DefaultWebhookDispatcher{
		webhookRepo:  webhookRepo,
		deliveryRepo: deliveryRepo,
		sender:       sender,
		metrics:      gatewayMetrics,
	}
}

func (uc *DefaultWebhookDispatcher) FireEvent(storeID string, eventType domain.EventType, invoice *domain.Invoice) {
	webhooks, err := uc.webhookRepo.GetEnabledWebhooksByStoreID(storeID)
	if err != nil {
		slog.Error("failed to load webhooks for event",
			"store_id", storeID,
			"event", string(eventType),
			"error", err.Error())
		return
	}

	var wg sync.WaitGroup
	for _, webhook := range webhooks {
		if !webhook.Subscribed(eventType) {
			continue
		}

		wg.Add(1)
		go func(webhook *domain.Webhook) {
			defer wg.Done()
			uc.deliver(webhook, eventType, invoice)
		}(webhook)
	}
	wg.Wait()
}

func (uc *DefaultWebhookDispatcher) deliver(webhook *domain.Webhook, eventType domain.EventType, invoice *domain.Invoice) {
	deliveryID := uuid.New().String()

	payload := WebhookPayload{
		DeliveryID:         deliveryID,
		WebhookID:          webhook.ID,
		OriginalDeliveryID: deliveryID,
		IsRedelivery:       false,
		Type:               eventType,
		Timestamp:          time.Now().Unix(),
		StoreID:            webhook.StoreID,
		InvoiceID:          invoice.ID,
	}
	if eventType.CarriesMetadata() {
		payload.Metadata = invoiceMetadata(invoice)
	}

	uc.attempt(webhook, &payload)
}

func (uc *DefaultWebhookDispatcher) Redeliver(deliveryID string) (bool, error) {
	original, err := uc.deliveryRepo.GetDeliveryByID(deliveryID)
	if err != nil {
		return false, err
	}

	webhook, err := uc.webhookRepo.GetWebhookByID(original.WebhookID)
	if err != nil {
		return false, err
	}

	var payload WebhookPayload
	if err := json.Unmarshal([]byte(original.Payload), &payload); err != nil {
		return false, err
	}

	// fresh delivery id, but the chain keeps pointing at the first attempt
	payload.DeliveryID = uuid.New().String()
	payload.OriginalDeliveryID = original.OriginalDeliveryID
	payload.IsRedelivery = true
	payload.Timestamp = time.Now().Unix()

	result := uc.attempt(webhook, &payload)
	return result.Succeeded(), nil
}

// attempt marshals, signs, posts and records the outcome. The audit row is
// written regardless of the delivery result.
func (uc *DefaultWebhookDispatcher) attempt(webhook *domain.Webhook, payload *WebhookPayload) *notifier.DeliveryResult {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal webhook payload", "webhook_id", webhook.ID, "error", err.Error())
		return &notifier.DeliveryResult{}
	}

	result := uc.sender.Send(webhook.URL, body, SignPayload(webhook.Secret, body))

	delivery := &domain.WebhookDelivery{
		ID:                 payload.DeliveryID,
		WebhookID:          webhook.ID,
		InvoiceID:          payload.InvoiceID,
		EventType:          payload.Type,
		Payload:            string(body),
		OriginalDeliveryID: payload.OriginalDeliveryID,
		IsRedelivery:       payload.IsRedelivery,
		HTTPStatus:         result.StatusCode,
		ResponseBody:       result.Body,
		CreatedAt:          time.Now(),
	}
	if err := uc.deliveryRepo.CreateDelivery(delivery); err != nil {
		slog.Error("failed to record webhook delivery",
			"webhook_id", webhook.ID,
			"delivery_id", payload.DeliveryID,
			"error", err.Error())
	}

	if uc.metrics != nil {
		outcome := "failed"
		if result.Succeeded() {
			outcome = "ok"
		}
		uc.metrics.WebhookDeliveriesTotal.WithLabelValues(string(payload.Type), outcome).Inc()
	}

	if !result.Succeeded() {
		slog.Warn("webhook delivery failed",
			"webhook_id", webhook.ID,
			"url", webhook.URL,
			"status", result.StatusCode)
	}

	return result
}

// SignPayload computes the signature header value for the exact payload
// bytes: an HMAC-SHA256 keyed by the webhook secret, hex encoded.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func invoiceMetadata(invoice *domain.Invoice) *InvoiceMetadata {
	return &InvoiceMetadata{
		ID:               invoice.ID,
		Status:           string(invoice.Status),
		AdditionalStatus: invoice.AdditionalStatus,
		Amount:           invoice.Amount.String(),
		Currency:         invoice.Currency,
		AmountSats:       invoice.AmountSats,
		CreatedAt:        invoice.CreatedAt.Unix(),
		ExpiresAt:        invoice.ExpiresAt.Unix(),
	}
}
