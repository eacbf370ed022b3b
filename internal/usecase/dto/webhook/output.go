package webhookdto

import "github.com/cashupay/cashu-gateway-service/internal/domain"

type CreateWebhookOutput struct {
	Webhook *domain.Webhook
	// Secret is returned only here; it is never re-displayed.
	Secret string
}
