package webhookdto

import "github.com/cashupay/cashu-gateway-service/internal/domain"

type CreateWebhookInput struct {
	StoreID string
	URL     string
	Events  []domain.EventType
	Enabled bool
}

type UpdateWebhookInput struct {
	WebhookID string
	URL       string
	Events    []domain.EventType
	Enabled   *bool
}
