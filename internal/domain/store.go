package domain

import "time"

type Store struct {
	ID                    string
	Name                  string
	MintURL               string
	MintUnit              string
	Seed                  string
	ExchangeFeePercent    float64
	PriceProvider         string
	FallbackPriceProvider string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type StoreRepository interface {
	CreateStore(store *Store) error
	UpdateStore(store *Store) error
	DeleteStore(id string) error
	GetStoreByID(id string) (*Store, error)
	GetStores(page, limit int32) ([]*Store, error)
}
