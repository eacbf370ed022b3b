package models

import "time"

type StoreModel struct {
	ID                    string  `gorm:"primaryKey;type:uuid"`
	Name                  string  `gorm:"not null"`
	MintURL               string  `gorm:"not null"`
	MintUnit              string  `gorm:"not null;default:'sat'"`
	Seed                  string
	ExchangeFeePercent    float64 `gorm:"default:0"`
	PriceProvider         string
	FallbackPriceProvider string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (StoreModel) TableName() string {
	return "stores"
}
