package domain

import "errors"

var (
	ErrStoreNotFound           = errors.New("store not found")
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrWebhookNotFound         = errors.New("webhook not found")
	ErrDeliveryNotFound        = errors.New("webhook delivery not found")
	ErrNoExchangeRate          = errors.New("no usable exchange rate")
	ErrCurrencyNotSupported    = errors.New("currency not supported by provider")
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")
)
