package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/models"
)

type DefaultStoreRepository struct {
	db *gorm.DB
}

func NewDefaultStoreRepository(db *gorm.DB) *DefaultStoreRepository {
	return &DefaultStoreRepository{db: db}
}

func (r *DefaultStoreRepository) CreateStore(store *domain.Store) error {
	return r.db.Create(r.toModel(store)).Error
}

func (r *DefaultStoreRepository) UpdateStore(store *domain.Store) error {
	return r.db.Save(r.toModel(store)).Error
}

func (r *DefaultStoreRepository) DeleteStore(id string) error {
	res := r.db.Delete(&models.StoreModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

func (r *DefaultStoreRepository) GetStoreByID(id string) (*domain.Store, error) {
	var model models.StoreModel
	if err := r.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultStoreRepository) GetStores(page, limit int32) ([]*domain.Store, error) {
	var storeModels []*models.StoreModel

	offset := (page - 1) * limit
	if err := r.db.Model(&models.StoreModel{}).
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&storeModels).Error; err != nil {
		return nil, err
	}

	stores := make([]*domain.Store, len(storeModels))
	for i, model := range storeModels {
		stores[i] = r.toDomain(model)
	}
	return stores, nil
}

func (r *DefaultStoreRepository) toModel(store *domain.Store) *models.StoreModel {
	return &models.StoreModel{
		ID:                    store.ID,
		Name:                  store.Name,
		MintURL:               store.MintURL,
		MintUnit:              store.MintUnit,
		Seed:                  store.Seed,
		ExchangeFeePercent:    store.ExchangeFeePercent,
		PriceProvider:         store.PriceProvider,
		FallbackPriceProvider: store.FallbackPriceProvider,
		CreatedAt:             store.CreatedAt,
		UpdatedAt:             store.UpdatedAt,
	}
}

func (r *DefaultStoreRepository) toDomain(model *models.StoreModel) *domain.Store {
	return &domain.Store{
		ID:                    model.ID,
		Name:                  model.Name,
		MintURL:               model.MintURL,
		MintUnit:              model.MintUnit,
		Seed:                  model.Seed,
		ExchangeFeePercent:    model.ExchangeFeePercent,
		PriceProvider:         model.PriceProvider,
		FallbackPriceProvider: model.FallbackPriceProvider,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	}
}
