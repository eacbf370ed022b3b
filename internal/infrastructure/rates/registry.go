package rates

import "github.com/cashupay/cashu-gateway-service/internal/domain"

// DefaultProviders returns every known price provider in the default
// fallback order. Store preferences reorder this set at lookup time; adding
// a feed means adding a concrete type and listing it here.
func DefaultProviders() []domain.PriceProvider {
	return []domain.PriceProvider{
		NewCoingeckoProvider(),
		NewKrakenProvider(),
		NewCoinbaseProvider(),
	}
}
