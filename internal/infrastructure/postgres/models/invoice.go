package models

import (
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/shopspring/decimal"
)

type InvoiceModel struct {
	ID               string               `gorm:"primaryKey;type:uuid"`
	StoreID          string               `gorm:"type:uuid;not null;index:idx_invoice_store"`
	Store            StoreModel           `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Amount           decimal.Decimal      `gorm:"type:numeric(20,8);not null"`
	Currency         string               `gorm:"not null"`
	AmountSats       uint64               `gorm:"not null"`
	PaymentRequest   string
	QuoteID          string               `gorm:"index"`
	Status           domain.InvoiceStatus `gorm:"index:idx_invoice_status_expires"`
	AdditionalStatus string
	RedirectURL      string
	AutoRedirect     bool
	ExpiresAt        time.Time `gorm:"index:idx_invoice_status_expires"`
	CreatedAt        time.Time `gorm:"index:idx_invoice_created_at"`
	UpdatedAt        time.Time
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
