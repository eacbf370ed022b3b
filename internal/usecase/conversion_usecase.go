package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// All conversions pivot through BTC with fixed-point decimals; binary floats
// would drift across the two legs. The BTC leg is kept at 8 decimal places,
// results are truncated to the target's smallest unit.

var (
	satsPerBTC  = decimal.NewFromInt(100_000_000)
	msatsPerBTC = decimal.NewFromInt(100_000_000_000)
	msatsPerSat = decimal.NewFromInt(1000)
	centsPerOne = decimal.NewFromInt(100)
)

type ConversionUsecase interface {
	ConvertToMintUnit(ctx context.Context, amount decimal.Decimal, currency, mintUnit string, feePercent float64, primaryProvider, secondaryProvider string) (uint64, error)
	ConvertMintUnitToSats(ctx context.Context, amount uint64, mintUnit string) (uint64, error)
	ConvertSatsToMintUnit(ctx context.Context, sats uint64, mintUnit string) (uint64, error)
}

type DefaultConversionUsecase struct {
	rates RateUsecase
}

func NewDefaultConversionUsecase(rates RateUsecase) *DefaultConversionUsecase {
	return &DefaultConversionUsecase{rates: rates}
}

// ConvertToMintUnit turns a requested amount into the mint's smallest-unit
// integer representation, applying the store's exchange fee on top.
func (uc *DefaultConversionUsecase) ConvertToMintUnit(ctx context.Context, amount decimal.Decimal, currency, mintUnit string, feePercent float64, primaryProvider, secondaryProvider string) (uint64, error) {
	if amount.IsNegative() || amount.IsZero() {
		return 0, fmt.Errorf("amount must be positive")
	}

	currency = strings.ToUpper(currency)
	mintUnit = strings.ToUpper(mintUnit)

	// same unit: no rate lookup, only smallest-unit normalization
	if currency == mintUnit {
		return toSmallestUnit(amount, mintUnit)
	}

	btcAmount, err := uc.toBtc(ctx, amount, currency, primaryProvider, secondaryProvider)
	if err != nil {
		return 0, err
	}

	target, err := uc.fromBtc(ctx, btcAmount, mintUnit, primaryProvider, secondaryProvider)
	if err != nil {
		return 0, err
	}

	if feePercent != 0 {
		multiplier := decimal.NewFromInt(1).Add(decimal.NewFromFloat(feePercent).Div(centsPerOne))
		target = target.Mul(multiplier)
	}

	return decimalToUint(target.Floor())
}

// ConvertMintUnitToSats expresses a smallest-unit mint amount in satoshis.
func (uc *DefaultConversionUsecase) ConvertMintUnitToSats(ctx context.Context, amount uint64, mintUnit string) (uint64, error) {
	mintUnit = strings.ToUpper(mintUnit)
	value := decimal.NewFromUint64(amount)

	switch mintUnit {
	case "SAT", "SATS", "BTC":
		return amount, nil
	case "MSAT":
		return decimalToUint(value.Div(msatsPerSat).Ceil())
	}

	rate, err := uc.rates.GetBtcPrice(ctx, mintUnit, "", "")
	if err != nil {
		return 0, err
	}

	btcAmount := value.Div(centsPerOne).DivRound(decimal.NewFromFloat(rate), 8)
	return decimalToUint(btcAmount.Mul(satsPerBTC).Floor())
}

// ConvertSatsToMintUnit expresses satoshis in the mint's smallest unit.
func (uc *DefaultConversionUsecase) ConvertSatsToMintUnit(ctx context.Context, sats uint64, mintUnit string) (uint64, error) {
	mintUnit = strings.ToUpper(mintUnit)
	value := decimal.NewFromUint64(sats)

	switch mintUnit {
	case "SAT", "SATS", "BTC":
		return sats, nil
	case "MSAT":
		return decimalToUint(value.Mul(msatsPerSat))
	}

	rate, err := uc.rates.GetBtcPrice(ctx, mintUnit, "", "")
	if err != nil {
		return 0, err
	}

	btcAmount := value.Div(satsPerBTC)
	return decimalToUint(btcAmount.Mul(decimal.NewFromFloat(rate)).Mul(centsPerOne).Floor())
}

// toBtc converts an amount in the given currency to BTC, 8 decimal places.
func (uc *DefaultConversionUsecase) toBtc(ctx context.Context, amount decimal.Decimal, currency, primaryProvider, secondaryProvider string) (decimal.Decimal, error) {
	switch currency {
	case "BTC":
		return amount, nil
	case "SAT", "SATS":
		return amount.Div(satsPerBTC), nil
	case "MSAT":
		return amount.Div(msatsPerBTC), nil
	}

	rate, err := uc.rates.GetBtcPrice(ctx, currency, primaryProvider, secondaryProvider)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.DivRound(decimal.NewFromFloat(rate), 8), nil
}

// fromBtc converts a BTC amount into the target unit's smallest denomination
// (still decimal; the caller truncates after fees).
func (uc *DefaultConversionUsecase) fromBtc(ctx context.Context, btcAmount decimal.Decimal, unit, primaryProvider, secondaryProvider string) (decimal.Decimal, error) {
	switch unit {
	case "BTC", "SAT", "SATS":
		return btcAmount.Mul(satsPerBTC), nil
	case "MSAT":
		return btcAmount.Mul(msatsPerBTC), nil
	}

	rate, err := uc.rates.GetBtcPrice(ctx, unit, primaryProvider, secondaryProvider)
	if err != nil {
		return decimal.Zero, err
	}
	return btcAmount.Mul(decimal.NewFromFloat(rate)).Mul(centsPerOne), nil
}

// toSmallestUnit normalizes a same-unit amount: fiat to cents, sats passed
// through, msat kept as msat, whole BTC to sats.
func toSmallestUnit(amount decimal.Decimal, unit string) (uint64, error) {
	switch unit {
	case "BTC":
		return decimalToUint(amount.Mul(satsPerBTC).Floor())
	case "SAT", "SATS", "MSAT":
		return decimalToUint(amount.Floor())
	}
	return decimalToUint(amount.Mul(centsPerOne).Floor())
}

func decimalToUint(value decimal.Decimal) (uint64, error) {
	if value.IsNegative() {
		return 0, fmt.Errorf("amount must be positive")
	}
	if !value.Equal(value.Floor()) {
		value = value.Floor()
	}
	return value.BigInt().Uint64(), nil
}

// IsBitcoinUnit reports whether the unit converts by pure scaling, never via
// a price provider.
func IsBitcoinUnit(unit string) bool {
	switch strings.ToUpper(unit) {
	case "BTC", "SAT", "SATS", "MSAT":
		return true
	}
	return false
}
