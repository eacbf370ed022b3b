package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	webhookdto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/webhook"
)

type WebhookUsecase interface {
	CreateWebhook(input *webhookdto.CreateWebhookInput) (*webhookdto.CreateWebhookOutput, error)
	UpdateWebhook(input *webhookdto.UpdateWebhookInput) error
	DeleteWebhook(webhookID string) error
	GetWebhookByID(webhookID string) (*domain.Webhook, error)
	GetStoreWebhooks(storeID string) ([]*domain.Webhook, error)
	GetWebhookDeliveries(webhookID string, page, limit int32) ([]*domain.WebhookDelivery, int64, error)
}

type DefaultWebhookUsecase struct {
	webhookRepo  domain.WebhookRepository
	deliveryRepo domain.WebhookDeliveryRepository
	storeRepo    domain.StoreRepository
}

func NewDefaultWebhookUsecase(
	webhookRepo domain.WebhookRepository,
	deliveryRepo domain.WebhookDeliveryRepository,
	storeRepo domain.StoreRepository) *DefaultWebhookUsecase {

	return &DefaultWebhookUsecase{
		webhookRepo:  webhookRepo,
		deliveryRepo: deliveryRepo,
		storeRepo:    storeRepo,
	}
}

func (uc *DefaultWebhookUsecase) CreateWebhook(input *webhookdto.CreateWebhookInput) (*webhookdto.CreateWebhookOutput, error) {
	if input.URL == "" {
		return nil, status.Error(codes.InvalidArgument, "webhook url is required")
	}
	if _, err := uc.storeRepo.GetStoreByID(input.StoreID); err != nil {
		return nil, status.Error(codes.NotFound, "store not found")
	}

	secretGenerator, err := nanoid.Standard(32)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	webhook := &domain.Webhook{
		ID:        uuid.New().String(),
		StoreID:   input.StoreID,
		URL:       input.URL,
		Secret:    secretGenerator(),
		Events:    input.Events,
		Enabled:   input.Enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.webhookRepo.CreateWebhook(webhook); err != nil {
		return nil, err
	}

	// the secret is shown exactly once, at creation
	return &webhookdto.CreateWebhookOutput{
		Webhook: webhook,
		Secret:  webhook.Secret,
	}, nil
}

func (uc *DefaultWebhookUsecase) UpdateWebhook(input *webhookdto.UpdateWebhookInput) error {
	webhook, err := uc.webhookRepo.GetWebhookByID(input.WebhookID)
	if err != nil {
		return status.Error(codes.NotFound, "webhook not found")
	}

	if input.URL != "" {
		webhook.URL = input.URL
	}
	if input.Events != nil {
		webhook.Events = input.Events
	}
	if input.Enabled != nil {
		webhook.Enabled = *input.Enabled
	}
	webhook.UpdatedAt = time.Now()

	// secret stays whatever it was at creation
	return uc.webhookRepo.UpdateWebhook(webhook)
}

func (uc *DefaultWebhookUsecase) DeleteWebhook(webhookID string) error {
	return uc.webhookRepo.DeleteWebhook(webhookID)
}

func (uc *DefaultWebhookUsecase) GetWebhookByID(webhookID string) (*domain.Webhook, error) {
	return uc.webhookRepo.GetWebhookByID(webhookID)
}

func (uc *DefaultWebhookUsecase) GetStoreWebhooks(storeID string) ([]*domain.Webhook, error) {
	return uc.webhookRepo.GetWebhooksByStoreID(storeID)
}

func (uc *DefaultWebhookUsecase) GetWebhookDeliveries(webhookID string, page, limit int32) ([]*domain.WebhookDelivery, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.deliveryRepo.GetDeliveriesByWebhookID(webhookID, page, limit)
}
