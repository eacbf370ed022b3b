package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	StatusNew        InvoiceStatus = "NEW"
	StatusProcessing InvoiceStatus = "PROCESSING"
	StatusSettled    InvoiceStatus = "SETTLED"
	StatusExpired    InvoiceStatus = "EXPIRED"
	StatusInvalid    InvoiceStatus = "INVALID"
)

func (s InvoiceStatus) Terminal() bool {
	return s == StatusSettled || s == StatusExpired || s == StatusInvalid
}

type Invoice struct {
	ID               string
	StoreID          string
	Amount           decimal.Decimal
	Currency         string
	AmountSats       uint64
	PaymentRequest   string
	QuoteID          string
	Status           InvoiceStatus
	AdditionalStatus string
	RedirectURL      string
	AutoRedirect     bool
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type InvoiceRepository interface {
	CreateInvoice(invoice *Invoice) error
	GetInvoiceByID(id string) (*Invoice, error)
	GetInvoicesByStoreID(storeID string, page, limit int32) ([]*Invoice, int64, error)
	// UpdateInvoiceStatus applies the transition only if the current status is
	// one of from, and reports whether a row was actually updated.
	UpdateInvoiceStatus(id string, from []InvoiceStatus, to InvoiceStatus, additionalStatus string) (bool, error)
	FindPendingInvoices() ([]*Invoice, error)
}
