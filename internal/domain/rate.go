package domain

import (
	"context"
	"time"
)

const (
	// RateFreshTTL is how long a cached rate is served without hitting providers.
	RateFreshTTL = 5 * time.Minute
	// RateStaleTTL is the last-resort window when every live provider fails.
	RateStaleTTL = time.Hour
)

type RateCacheEntry struct {
	Currency  string
	Rate      float64
	Provider  string
	FetchedAt time.Time
}

func (e *RateCacheEntry) Fresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) <= RateFreshTTL
}

func (e *RateCacheEntry) Usable(now time.Time) bool {
	return now.Sub(e.FetchedAt) <= RateStaleTTL
}

type RateCacheRepository interface {
	UpsertRate(entry *RateCacheEntry) error
	// GetRate returns nil, nil when no entry exists for the currency.
	GetRate(currency string) (*RateCacheEntry, error)
	GetAllRates() ([]*RateCacheEntry, error)
}

type PriceProvider interface {
	// GetBtcPrice returns the BTC price in the given currency.
	// ErrCurrencyNotSupported means the feed has no such pair and the next
	// provider should be tried; any other error is a feed failure.
	GetBtcPrice(ctx context.Context, currency string) (float64, error)
	Name() string
}
