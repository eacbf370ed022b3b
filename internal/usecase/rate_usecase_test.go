package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

type fakeProvider struct {
	name  string
	rate  float64
	err   error
	calls int
}

func (p *fakeProvider) GetBtcPrice(ctx context.Context, currency string) (float64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return p.rate, nil
}

func (p *fakeProvider) Name() string {
	return p.name
}

type fakeRateCache struct {
	entries map[string]*domain.RateCacheEntry
}

func newFakeRateCache() *fakeRateCache {
	return &fakeRateCache{entries: make(map[string]*domain.RateCacheEntry)}
}

func (c *fakeRateCache) UpsertRate(entry *domain.RateCacheEntry) error {
	copied := *entry
	c.entries[strings.ToUpper(entry.Currency)] = &copied
	return nil
}

func (c *fakeRateCache) GetRate(currency string) (*domain.RateCacheEntry, error) {
	entry, ok := c.entries[strings.ToUpper(currency)]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (c *fakeRateCache) GetAllRates() ([]*domain.RateCacheEntry, error) {
	all := make([]*domain.RateCacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		copied := *entry
		all = append(all, &copied)
	}
	return all, nil
}

func TestGetBtcPriceFallsBackToNextProvider(t *testing.T) {
	primary := &fakeProvider{name: "coingecko", err: errors.New("feed down")}
	secondary := &fakeProvider{name: "kraken", rate: 50000}
	cache := newFakeRateCache()
	uc := NewDefaultRateUsecase([]domain.PriceProvider{primary, secondary}, cache, nil)

	rate, err := uc.GetBtcPrice(context.Background(), "eur", "", "")
	require.NoError(t, err)
	assert.Equal(t, float64(50000), rate)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)

	// the winner's name lands in the cache
	cached, err := cache.GetRate("EUR")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "kraken", cached.Provider)
}

func TestGetBtcPricePrefersStoreProviderOrder(t *testing.T) {
	coingecko := &fakeProvider{name: "coingecko", rate: 50001}
	kraken := &fakeProvider{name: "kraken", rate: 50002}
	uc := NewDefaultRateUsecase([]domain.PriceProvider{coingecko, kraken}, newFakeRateCache(), nil)

	rate, err := uc.GetBtcPrice(context.Background(), "USD", "kraken", "coingecko")
	require.NoError(t, err)
	assert.Equal(t, float64(50002), rate)
	assert.Equal(t, 0, coingecko.calls)
}

func TestGetBtcPriceServesFreshCacheWithoutProviders(t *testing.T) {
	provider := &fakeProvider{name: "coingecko", rate: 50000}
	cache := newFakeRateCache()
	cache.UpsertRate(&domain.RateCacheEntry{
		Currency:  "USD",
		Rate:      49000,
		Provider:  "kraken",
		FetchedAt: time.Now().Add(-time.Minute),
	})
	uc := NewDefaultRateUsecase([]domain.PriceProvider{provider}, cache, nil)

	rate, err := uc.GetBtcPrice(context.Background(), "usd", "", "")
	require.NoError(t, err)
	assert.Equal(t, float64(49000), rate)
	assert.Equal(t, 0, provider.calls)
}

func TestGetBtcPriceServesStaleCacheWhenAllProvidersFail(t *testing.T) {
	provider := &fakeProvider{name: "coingecko", err: errors.New("feed down")}
	cache := newFakeRateCache()
	cache.UpsertRate(&domain.RateCacheEntry{
		Currency:  "USD",
		Rate:      48000,
		Provider:  "coingecko",
		FetchedAt: time.Now().Add(-30 * time.Minute),
	})
	uc := NewDefaultRateUsecase([]domain.PriceProvider{provider}, cache, nil)

	rate, err := uc.GetBtcPrice(context.Background(), "USD", "", "")
	require.NoError(t, err)
	assert.Equal(t, float64(48000), rate)
	assert.Equal(t, 1, provider.calls)
}

func TestGetBtcPriceFailsWithoutProvidersOrCache(t *testing.T) {
	provider := &fakeProvider{name: "coingecko", err: errors.New("feed down")}
	uc := NewDefaultRateUsecase([]domain.PriceProvider{provider}, newFakeRateCache(), nil)

	_, err := uc.GetBtcPrice(context.Background(), "USD", "", "")
	assert.ErrorIs(t, err, domain.ErrNoExchangeRate)
}

func TestGetBtcPriceSkipsUnsupportedCurrency(t *testing.T) {
	unsupported := &fakeProvider{name: "coingecko", err: domain.ErrCurrencyNotSupported}
	supported := &fakeProvider{name: "kraken", rate: 42}
	uc := NewDefaultRateUsecase([]domain.PriceProvider{unsupported, supported}, newFakeRateCache(), nil)

	rate, err := uc.GetBtcPrice(context.Background(), "CHF", "", "")
	require.NoError(t, err)
	assert.Equal(t, float64(42), rate)
}

func TestRefreshStaleRatesRefetchesOnlyStaleEntries(t *testing.T) {
	provider := &fakeProvider{name: "coingecko", rate: 51000}
	cache := newFakeRateCache()
	cache.UpsertRate(&domain.RateCacheEntry{
		Currency:  "USD",
		Rate:      50000,
		Provider:  "coingecko",
		FetchedAt: time.Now().Add(-time.Minute),
	})
	cache.UpsertRate(&domain.RateCacheEntry{
		Currency:  "EUR",
		Rate:      46000,
		Provider:  "coingecko",
		FetchedAt: time.Now().Add(-20 * time.Minute),
	})
	uc := NewDefaultRateUsecase([]domain.PriceProvider{provider}, cache, nil)

	require.NoError(t, uc.RefreshStaleRates(context.Background()))
	assert.Equal(t, 1, provider.calls)

	refreshed, err := cache.GetRate("EUR")
	require.NoError(t, err)
	assert.Equal(t, float64(51000), refreshed.Rate)

	untouched, err := cache.GetRate("USD")
	require.NoError(t, err)
	assert.Equal(t, float64(50000), untouched.Rate)
}
