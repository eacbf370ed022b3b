package domain

type InvoiceEvent struct {
	InvoiceID  string `json:"invoice_id"`
	StoreID    string `json:"store_id"`
	Status     string `json:"status"`
	AmountSats uint64 `json:"amount_sats"`
	Currency   string `json:"currency"`
}

type EventPublisher interface {
	PublishInvoiceEvent(event InvoiceEvent) error
}
