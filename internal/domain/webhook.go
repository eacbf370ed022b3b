package domain

import "time"

type EventType string

const (
	EventInvoiceCreated         EventType = "InvoiceCreated"
	EventInvoiceReceivedPayment EventType = "InvoiceReceivedPayment"
	EventInvoiceProcessing      EventType = "InvoiceProcessing"
	EventInvoiceSettled         EventType = "InvoiceSettled"
	EventInvoiceExpired         EventType = "InvoiceExpired"
	EventInvoiceInvalid         EventType = "InvoiceInvalid"
)

// CarriesMetadata reports whether deliveries of this event type embed the
// invoice summary in the payload.
func (e EventType) CarriesMetadata() bool {
	return e == EventInvoiceCreated || e == EventInvoiceReceivedPayment || e == EventInvoiceSettled
}

type Webhook struct {
	ID        string
	StoreID   string
	URL       string
	Secret    string
	Events    []EventType
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subscribed reports whether the webhook wants the given event type.
// An empty filter subscribes to everything.
func (w *Webhook) Subscribed(event EventType) bool {
	if len(w.Events) == 0 {
		return true
	}
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}

type WebhookDelivery struct {
	ID                 string
	WebhookID          string
	InvoiceID          string
	EventType          EventType
	Payload            string
	OriginalDeliveryID string
	IsRedelivery       bool
	HTTPStatus         int
	ResponseBody       string
	CreatedAt          time.Time
}

type WebhookRepository interface {
	CreateWebhook(webhook *Webhook) error
	UpdateWebhook(webhook *Webhook) error
	DeleteWebhook(id string) error
	GetWebhookByID(id string) (*Webhook, error)
	GetWebhooksByStoreID(storeID string) ([]*Webhook, error)
	GetEnabledWebhooksByStoreID(storeID string) ([]*Webhook, error)
}

type WebhookDeliveryRepository interface {
	CreateDelivery(delivery *WebhookDelivery) error
	GetDeliveryByID(id string) (*WebhookDelivery, error)
	GetDeliveriesByWebhookID(webhookID string, page, limit int32) ([]*WebhookDelivery, int64, error)
}
