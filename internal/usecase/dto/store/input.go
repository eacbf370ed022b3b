package storedto

type CreateStoreInput struct {
	Name                  string
	MintURL               string
	MintUnit              string
	Seed                  string
	ExchangeFeePercent    float64
	PriceProvider         string
	FallbackPriceProvider string
}

type UpdateStoreInput struct {
	StoreID               string
	Name                  string
	MintURL               string
	MintUnit              string
	ExchangeFeePercent    *float64
	PriceProvider         *string
	FallbackPriceProvider *string
}
