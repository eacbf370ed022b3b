package domain

import (
	"context"
	"time"
)

type QuoteState string

const (
	QuoteStateUnpaid QuoteState = "UNPAID"
	QuoteStatePaid   QuoteState = "PAID"
	QuoteStateIssued QuoteState = "ISSUED"
)

type MintQuote struct {
	QuoteID        string
	PaymentRequest string
	State          QuoteState
	ExpiresAt      time.Time
}

// MintClient is the ecash mint capability consumed by the invoice pipeline.
// Quote creation returns a Lightning payment request funding the quote;
// proof redemption and key management live outside this service.
type MintClient interface {
	CreateMintQuote(ctx context.Context, amount uint64, unit string) (*MintQuote, error)
	CheckMintQuote(ctx context.Context, quoteID string) (QuoteState, error)
}
