package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRates struct {
	rate  float64
	err   error
	calls int
}

func (s *stubRates) GetBtcPrice(ctx context.Context, currency, primaryProvider, secondaryProvider string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.rate, nil
}

func (s *stubRates) RefreshStaleRates(ctx context.Context) error {
	return nil
}

func TestConvertToMintUnitFiatToSats(t *testing.T) {
	rates := &stubRates{rate: 50000}
	uc := NewDefaultConversionUsecase(rates)

	sats, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromFloat(10.00), "EUR", "sat", 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(20000), sats)
}

func TestConvertToMintUnitAppliesFee(t *testing.T) {
	rates := &stubRates{rate: 50000}
	uc := NewDefaultConversionUsecase(rates)

	sats, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromFloat(10.00), "EUR", "sat", 1.0, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(20200), sats)
}

func TestConvertToMintUnitSameUnitSkipsRateLookup(t *testing.T) {
	rates := &stubRates{rate: 50000}
	uc := NewDefaultConversionUsecase(rates)

	sats, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromInt(1234), "sat", "SAT", 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), sats)
	assert.Equal(t, 0, rates.calls)

	cents, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromFloat(12.34), "usd", "USD", 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), cents)
	assert.Equal(t, 0, rates.calls)
}

func TestConvertToMintUnitBtcScaling(t *testing.T) {
	rates := &stubRates{}
	uc := NewDefaultConversionUsecase(rates)

	sats, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromFloat(0.0005), "BTC", "sat", 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(50000), sats)
	assert.Equal(t, 0, rates.calls)

	msats, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromInt(21), "sat", "msat", 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), msats)
	assert.Equal(t, 0, rates.calls)
}

func TestConvertToMintUnitRejectsNonPositiveAmount(t *testing.T) {
	uc := NewDefaultConversionUsecase(&stubRates{rate: 50000})

	_, err := uc.ConvertToMintUnit(context.Background(), decimal.Zero, "EUR", "sat", 0, "", "")
	assert.Error(t, err)

	_, err = uc.ConvertToMintUnit(context.Background(), decimal.NewFromInt(-5), "EUR", "sat", 0, "", "")
	assert.Error(t, err)
}

func TestConvertToMintUnitPropagatesRateError(t *testing.T) {
	rates := &stubRates{err: assert.AnError}
	uc := NewDefaultConversionUsecase(rates)

	_, err := uc.ConvertToMintUnit(context.Background(), decimal.NewFromInt(10), "EUR", "sat", 0, "", "")
	assert.Error(t, err)
}

func TestConvertMintUnitToSats(t *testing.T) {
	rates := &stubRates{rate: 50000}
	uc := NewDefaultConversionUsecase(rates)

	sats, err := uc.ConvertMintUnitToSats(context.Background(), 21000, "sat")
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), sats)

	// partial millisats round up so the invoice never undercharges
	sats, err = uc.ConvertMintUnitToSats(context.Background(), 2500, "msat")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sats)

	// 1000 cents at 50000/BTC is 0.0002 BTC
	sats, err = uc.ConvertMintUnitToSats(context.Background(), 1000, "usd")
	require.NoError(t, err)
	assert.Equal(t, uint64(20000), sats)
}

func TestConvertSatsToMintUnit(t *testing.T) {
	rates := &stubRates{rate: 50000}
	uc := NewDefaultConversionUsecase(rates)

	cents, err := uc.ConvertSatsToMintUnit(context.Background(), 20000, "usd")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), cents)

	msats, err := uc.ConvertSatsToMintUnit(context.Background(), 21, "msat")
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), msats)
}

func TestConversionRoundTripStaysWithinOneUnit(t *testing.T) {
	rates := &stubRates{rate: 48123.45}
	uc := NewDefaultConversionUsecase(rates)

	cents, err := uc.ConvertSatsToMintUnit(context.Background(), 20000, "eur")
	require.NoError(t, err)

	back, err := uc.ConvertMintUnitToSats(context.Background(), cents, "eur")
	require.NoError(t, err)

	diff := int64(back) - 20000
	if diff < 0 {
		diff = -diff
	}
	// truncating to whole cents can cost at most one cent, about 21 sats here
	assert.LessOrEqual(t, diff, int64(21), "round trip drifted by %d sats", diff)
}

func TestIsBitcoinUnit(t *testing.T) {
	assert.True(t, IsBitcoinUnit("sat"))
	assert.True(t, IsBitcoinUnit("MSAT"))
	assert.True(t, IsBitcoinUnit("btc"))
	assert.False(t, IsBitcoinUnit("usd"))
}
