package models

import "time"

type WebhookModel struct {
	ID        string     `gorm:"primaryKey;type:uuid"`
	StoreID   string     `gorm:"type:uuid;not null;index:idx_webhook_store"`
	Store     StoreModel `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	URL       string     `gorm:"not null"`
	Secret    string     `gorm:"not null"`
	// Events is a comma-joined event type filter; empty subscribes to all.
	Events    string
	Enabled   bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WebhookModel) TableName() string {
	return "webhooks"
}

type WebhookDeliveryModel struct {
	ID                 string       `gorm:"primaryKey;type:uuid"`
	WebhookID          string       `gorm:"type:uuid;not null;index:idx_delivery_webhook"`
	Webhook            WebhookModel `gorm:"foreignKey:WebhookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	InvoiceID          string       `gorm:"type:uuid;index:idx_delivery_invoice"`
	EventType          string       `gorm:"not null"`
	Payload            string
	OriginalDeliveryID string `gorm:"type:uuid"`
	IsRedelivery       bool
	HTTPStatus         int
	ResponseBody       string
	CreatedAt          time.Time `gorm:"index:idx_delivery_created_at"`
}

func (WebhookDeliveryModel) TableName() string {
	return "webhook_deliveries"
}
