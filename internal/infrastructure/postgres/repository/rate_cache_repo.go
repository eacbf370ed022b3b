package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/models"
)

type DefaultRateCacheRepository struct {
	db *gorm.DB
}

func NewDefaultRateCacheRepository(db *gorm.DB) *DefaultRateCacheRepository {
	return &DefaultRateCacheRepository{db: db}
}

func (r *DefaultRateCacheRepository) UpsertRate(entry *domain.RateCacheEntry) error {
	model := &models.RateCacheModel{
		Currency:  strings.ToUpper(entry.Currency),
		Rate:      entry.Rate,
		Provider:  entry.Provider,
		FetchedAt: entry.FetchedAt,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "provider", "fetched_at"}),
	}).Create(model).Error
}

func (r *DefaultRateCacheRepository) GetRate(currency string) (*domain.RateCacheEntry, error) {
	var model models.RateCacheModel
	if err := r.db.First(&model, "currency = ?", strings.ToUpper(currency)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultRateCacheRepository) GetAllRates() ([]*domain.RateCacheEntry, error) {
	var rateModels []*models.RateCacheModel
	if err := r.db.Find(&rateModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.RateCacheEntry, len(rateModels))
	for i, model := range rateModels {
		entries[i] = r.toDomain(model)
	}
	return entries, nil
}

func (r *DefaultRateCacheRepository) toDomain(model *models.RateCacheModel) *domain.RateCacheEntry {
	return &domain.RateCacheEntry{
		Currency:  model.Currency,
		Rate:      model.Rate,
		Provider:  model.Provider,
		FetchedAt: model.FetchedAt,
	}
}
