package models

import "time"

type RateCacheModel struct {
	Currency  string  `gorm:"primaryKey"`
	Rate      float64 `gorm:"not null"`
	Provider  string  `gorm:"not null"`
	FetchedAt time.Time
}

func (RateCacheModel) TableName() string {
	return "rate_cache_entries"
}
