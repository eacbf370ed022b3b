package invoicedto

import "github.com/shopspring/decimal"

type CreateInvoiceInput struct {
	StoreID      string
	Amount       decimal.Decimal
	Currency     string
	RedirectURL  string
	AutoRedirect bool
}

type UpdateInvoiceStatusInput struct {
	InvoiceID string
	Status    string
}
