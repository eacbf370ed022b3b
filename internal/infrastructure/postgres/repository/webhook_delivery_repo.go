package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/models"
)

type DefaultWebhookDeliveryRepository struct {
	db *gorm.DB
}

func NewDefaultWebhookDeliveryRepository(db *gorm.DB) *DefaultWebhookDeliveryRepository {
	return &DefaultWebhookDeliveryRepository{db: db}
}

func (r *DefaultWebhookDeliveryRepository) CreateDelivery(delivery *domain.WebhookDelivery) error {
	return r.db.Create(r.toModel(delivery)).Error
}

func (r *DefaultWebhookDeliveryRepository) GetDeliveryByID(id string) (*domain.WebhookDelivery, error) {
	var model models.WebhookDeliveryModel
	if err := r.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultWebhookDeliveryRepository) GetDeliveriesByWebhookID(webhookID string, page, limit int32) ([]*domain.WebhookDelivery, int64, error) {
	var deliveryModels []*models.WebhookDeliveryModel
	var total int64

	query := r.db.Model(&models.WebhookDeliveryModel{}).Where("webhook_id = ?", webhookID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&deliveryModels).Error; err != nil {
		return nil, 0, err
	}

	deliveries := make([]*domain.WebhookDelivery, len(deliveryModels))
	for i, model := range deliveryModels {
		deliveries[i] = r.toDomain(model)
	}
	return deliveries, total, nil
}

func (r *DefaultWebhookDeliveryRepository) toModel(delivery *domain.WebhookDelivery) *models.WebhookDeliveryModel {
	return &models.WebhookDeliveryModel{
		ID:                 delivery.ID,
		WebhookID:          delivery.WebhookID,
		InvoiceID:          delivery.InvoiceID,
		EventType:          string(delivery.EventType),
		Payload:            delivery.Payload,
		OriginalDeliveryID: delivery.OriginalDeliveryID,
		IsRedelivery:       delivery.IsRedelivery,
		HTTPStatus:         delivery.HTTPStatus,
		ResponseBody:       delivery.ResponseBody,
		CreatedAt:          delivery.CreatedAt,
	}
}

func (r *DefaultWebhookDeliveryRepository) toDomain(model *models.WebhookDeliveryModel) *domain.WebhookDelivery {
	return &domain.WebhookDelivery{
		ID:                 model.ID,
		WebhookID:          model.WebhookID,
		InvoiceID:          model.InvoiceID,
		EventType:          domain.EventType(model.EventType),
		Payload:            model.Payload,
		OriginalDeliveryID: model.OriginalDeliveryID,
		IsRedelivery:       model.IsRedelivery,
		HTTPStatus:         model.HTTPStatus,
		ResponseBody:       model.ResponseBody,
		CreatedAt:          model.CreatedAt,
	}
}
