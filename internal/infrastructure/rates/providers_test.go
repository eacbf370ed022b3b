package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

func TestCoingeckoGetBtcPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"bitcoin":{"eur":50123.45}}`))
	}))
	defer server.Close()

	provider := NewCoingeckoProvider()
	provider.baseURL = server.URL

	price, err := provider.GetBtcPrice(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, 50123.45, price)
}

func TestCoingeckoUnsupportedCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{}}`))
	}))
	defer server.Close()

	provider := NewCoingeckoProvider()
	provider.baseURL = server.URL

	_, err := provider.GetBtcPrice(context.Background(), "XYZ")
	assert.ErrorIs(t, err, domain.ErrCurrencyNotSupported)
}

func TestCoingeckoFeedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewCoingeckoProvider()
	provider.baseURL = server.URL

	_, err := provider.GetBtcPrice(context.Background(), "EUR")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCurrencyNotSupported)
}

func TestKrakenGetBtcPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/Ticker", r.URL.Path)
		assert.Equal(t, "XBTEUR", r.URL.Query().Get("pair"))
		w.Write([]byte(`{"error":[],"result":{"XXBTZEUR":{"c":["50200.10000","0.01"]}}}`))
	}))
	defer server.Close()

	provider := NewKrakenProvider()
	provider.baseURL = server.URL

	price, err := provider.GetBtcPrice(context.Background(), "eur")
	require.NoError(t, err)
	assert.Equal(t, 50200.1, price)
}

func TestKrakenUnknownPair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":["EQuery:Unknown asset pair"],"result":{}}`))
	}))
	defer server.Close()

	provider := NewKrakenProvider()
	provider.baseURL = server.URL

	_, err := provider.GetBtcPrice(context.Background(), "XYZ")
	assert.ErrorIs(t, err, domain.ErrCurrencyNotSupported)
}

func TestCoinbaseGetBtcPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prices/BTC-EUR/spot", r.URL.Path)
		w.Write([]byte(`{"data":{"amount":"49999.99","currency":"EUR"}}`))
	}))
	defer server.Close()

	provider := NewCoinbaseProvider()
	provider.baseURL = server.URL

	price, err := provider.GetBtcPrice(context.Background(), "eur")
	require.NoError(t, err)
	assert.Equal(t, 49999.99, price)
}

func TestCoinbaseUnsupportedCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewCoinbaseProvider()
	provider.baseURL = server.URL

	_, err := provider.GetBtcPrice(context.Background(), "XYZ")
	assert.ErrorIs(t, err, domain.ErrCurrencyNotSupported)
}

func TestDefaultProvidersOrder(t *testing.T) {
	providers := DefaultProviders()
	require.Len(t, providers, 3)
	assert.Equal(t, "coingecko", providers[0].Name())
	assert.Equal(t, "kraken", providers[1].Name())
	assert.Equal(t, "coinbase", providers[2].Name())
}
