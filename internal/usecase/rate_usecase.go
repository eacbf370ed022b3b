package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/metrics"
)

type RateUsecase interface {
	// GetBtcPrice resolves the BTC price in the given currency, preferring
	// the named providers before the default registry order.
	GetBtcPrice(ctx context.Context, currency, primaryProvider, secondaryProvider string) (float64, error)
	RefreshStaleRates(ctx context.Context) error
}

type DefaultRateUsecase struct {
	providers []domain.PriceProvider
	cache     domain.RateCacheRepository
	metrics   *metrics.GatewayMetrics
}

func NewDefaultRateUsecase(
	providers []domain.PriceProvider,
	cache domain.RateCacheRepository,
	gatewayMetrics *metrics.GatewayMetrics) *DefaultRateUsecase {

	return &DefaultRateUsecase{
		providers: providers,
		cache:     cache,
		metrics:   gatewayMetrics,
	}
}

func (uc *DefaultRateUsecase) GetBtcPrice(ctx context.Context, currency, primaryProvider, secondaryProvider string) (float64, error) {
	currency = strings.ToUpper(currency)
	now := time.Now()

	cached, err := uc.cache.GetRate(currency)
	if err != nil {
		return 0, err
	}
	if cached != nil && cached.Fresh(now) {
		return cached.Rate, nil
	}

	for _, provider := range uc.orderProviders(primaryProvider, secondaryProvider) {
		rate, err := uc.fetch(ctx, provider, currency)
		if err != nil {
			if !errors.Is(err, domain.ErrCurrencyNotSupported) {
				slog.Warn("price provider failed",
					"provider", provider.Name(),
					"currency", currency,
					"error", err.Error())
			}
			continue
		}

		entry := &domain.RateCacheEntry{
			Currency:  currency,
			Rate:      rate,
			Provider:  provider.Name(),
			FetchedAt: now,
		}
		if err := uc.cache.UpsertRate(entry); err != nil {
			slog.Warn("failed to cache rate", "currency", currency, "error", err.Error())
		}
		return rate, nil
	}

	// every live provider is down or unsupported: a stale entry beats failing
	if cached != nil && cached.Usable(now) {
		slog.Warn("serving stale exchange rate",
			"currency", currency,
			"provider", cached.Provider,
			"age", now.Sub(cached.FetchedAt).String())
		return cached.Rate, nil
	}

	return 0, domain.ErrNoExchangeRate
}

func (uc *DefaultRateUsecase) RefreshStaleRates(ctx context.Context) error {
	entries, err := uc.cache.GetAllRates()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.Fresh(now) {
			continue
		}
		if _, err := uc.GetBtcPrice(ctx, entry.Currency, "", ""); err != nil {
			slog.Warn("rate refresh failed", "currency", entry.Currency, "error", err.Error())
		}
	}
	return nil
}

func (uc *DefaultRateUsecase) fetch(ctx context.Context, provider domain.PriceProvider, currency string) (float64, error) {
	start := time.Now()
	rate, err := provider.GetBtcPrice(ctx, currency)
	uc.observeLookup(provider.Name(), time.Since(start), err)
	if err != nil {
		return 0, err
	}
	if rate <= 0 {
		return 0, domain.ErrCurrencyNotSupported
	}
	return rate, nil
}

// orderProviders places the explicit primary and secondary first, then every
// remaining provider in registry order. Unknown names are ignored.
func (uc *DefaultRateUsecase) orderProviders(primary, secondary string) []domain.PriceProvider {
	ordered := make([]domain.PriceProvider, 0, len(uc.providers))
	seen := make(map[string]bool)

	for _, name := range []string{primary, secondary} {
		if name == "" || seen[name] {
			continue
		}
		for _, provider := range uc.providers {
			if provider.Name() == name {
				ordered = append(ordered, provider)
				seen[name] = true
				break
			}
		}
	}

	for _, provider := range uc.providers {
		if !seen[provider.Name()] {
			ordered = append(ordered, provider)
			seen[provider.Name()] = true
		}
	}

	return ordered
}

func (uc *DefaultRateUsecase) observeLookup(provider string, elapsed time.Duration, err error) {
	if uc.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrCurrencyNotSupported):
		result = "unsupported"
	case err != nil:
		result = "error"
	}
	uc.metrics.RateLookupsTotal.WithLabelValues(provider, result).Inc()
	uc.metrics.RateLookupDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
