package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	storedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/store"
)

type StoreUsecase interface {
	CreateStore(input *storedto.CreateStoreInput) (*domain.Store, error)
	UpdateStore(input *storedto.UpdateStoreInput) (*domain.Store, error)
	DeleteStore(storeID string) error
	GetStoreByID(storeID string) (*domain.Store, error)
	GetStores(page, limit int32) ([]*domain.Store, error)
}

type DefaultStoreUsecase struct {
	storeRepo domain.StoreRepository
}

func NewDefaultStoreUsecase(storeRepo domain.StoreRepository) *DefaultStoreUsecase {
	return &DefaultStoreUsecase{storeRepo: storeRepo}
}

func (uc *DefaultStoreUsecase) CreateStore(input *storedto.CreateStoreInput) (*domain.Store, error) {
	if input.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "store name is required")
	}
	if input.MintURL == "" {
		return nil, status.Error(codes.InvalidArgument, "mint url is required")
	}
	if input.ExchangeFeePercent < 0 {
		return nil, status.Error(codes.InvalidArgument, "exchange fee percent must not be negative")
	}

	mintUnit := strings.ToUpper(input.MintUnit)
	if mintUnit == "" {
		mintUnit = "SAT"
	}

	now := time.Now()
	store := &domain.Store{
		ID:                    uuid.New().String(),
		Name:                  input.Name,
		MintURL:               input.MintURL,
		MintUnit:              mintUnit,
		Seed:                  input.Seed,
		ExchangeFeePercent:    input.ExchangeFeePercent,
		PriceProvider:         input.PriceProvider,
		FallbackPriceProvider: input.FallbackPriceProvider,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := uc.storeRepo.CreateStore(store); err != nil {
		return nil, err
	}

	return store, nil
}

func (uc *DefaultStoreUsecase) UpdateStore(input *storedto.UpdateStoreInput) (*domain.Store, error) {
	store, err := uc.storeRepo.GetStoreByID(input.StoreID)
	if err != nil {
		return nil, status.Error(codes.NotFound, "store not found")
	}

	if input.Name != "" {
		store.Name = input.Name
	}
	if input.MintURL != "" {
		store.MintURL = input.MintURL
	}
	if input.MintUnit != "" {
		store.MintUnit = strings.ToUpper(input.MintUnit)
	}
	if input.ExchangeFeePercent != nil {
		if *input.ExchangeFeePercent < 0 {
			return nil, status.Error(codes.InvalidArgument, "exchange fee percent must not be negative")
		}
		store.ExchangeFeePercent = *input.ExchangeFeePercent
	}
	if input.PriceProvider != nil {
		store.PriceProvider = *input.PriceProvider
	}
	if input.FallbackPriceProvider != nil {
		store.FallbackPriceProvider = *input.FallbackPriceProvider
	}
	store.UpdatedAt = time.Now()

	if err := uc.storeRepo.UpdateStore(store); err != nil {
		return nil, err
	}

	return store, nil
}

func (uc *DefaultStoreUsecase) DeleteStore(storeID string) error {
	return uc.storeRepo.DeleteStore(storeID)
}

func (uc *DefaultStoreUsecase) GetStoreByID(storeID string) (*domain.Store, error) {
	return uc.storeRepo.GetStoreByID(storeID)
}

func (uc *DefaultStoreUsecase) GetStores(page, limit int32) ([]*domain.Store, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.storeRepo.GetStores(page, limit)
}
