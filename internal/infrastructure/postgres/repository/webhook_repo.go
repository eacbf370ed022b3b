package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/models"
)

type DefaultWebhookRepository struct {
	db *gorm.DB
}

func NewDefaultWebhookRepository(db *gorm.DB) *DefaultWebhookRepository {
	return &DefaultWebhookRepository{db: db}
}

func (r *DefaultWebhookRepository) CreateWebhook(webhook *domain.Webhook) error {
	return r.db.Create(r.toModel(webhook)).Error
}

func (r *DefaultWebhookRepository) UpdateWebhook(webhook *domain.Webhook) error {
	return r.db.Save(r.toModel(webhook)).Error
}

func (r *DefaultWebhookRepository) DeleteWebhook(id string) error {
	res := r.db.Delete(&models.WebhookModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrWebhookNotFound
	}
	return nil
}

func (r *DefaultWebhookRepository) GetWebhookByID(id string) (*domain.Webhook, error) {
	var model models.WebhookModel
	if err := r.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWebhookNotFound
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultWebhookRepository) GetWebhooksByStoreID(storeID string) ([]*domain.Webhook, error) {
	var webhookModels []*models.WebhookModel

	if err := r.db.Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&webhookModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(webhookModels), nil
}

func (r *DefaultWebhookRepository) GetEnabledWebhooksByStoreID(storeID string) ([]*domain.Webhook, error) {
	var webhookModels []*models.WebhookModel

	if err := r.db.Where("store_id = ? AND enabled = ?", storeID, true).
		Order("created_at ASC").
		Find(&webhookModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(webhookModels), nil
}

func (r *DefaultWebhookRepository) toModel(webhook *domain.Webhook) *models.WebhookModel {
	events := make([]string, len(webhook.Events))
	for i, e := range webhook.Events {
		events[i] = string(e)
	}

	return &models.WebhookModel{
		ID:        webhook.ID,
		StoreID:   webhook.StoreID,
		URL:       webhook.URL,
		Secret:    webhook.Secret,
		Events:    strings.Join(events, ","),
		Enabled:   webhook.Enabled,
		CreatedAt: webhook.CreatedAt,
		UpdatedAt: webhook.UpdatedAt,
	}
}

func (r *DefaultWebhookRepository) toDomain(model *models.WebhookModel) *domain.Webhook {
	var events []domain.EventType
	if model.Events != "" {
		for _, e := range strings.Split(model.Events, ",") {
			events = append(events, domain.EventType(e))
		}
	}

	return &domain.Webhook{
		ID:        model.ID,
		StoreID:   model.StoreID,
		URL:       model.URL,
		Secret:    model.Secret,
		Events:    events,
		Enabled:   model.Enabled,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (r *DefaultWebhookRepository) toDomainList(webhookModels []*models.WebhookModel) []*domain.Webhook {
	webhooks := make([]*domain.Webhook, len(webhookModels))
	for i, model := range webhookModels {
		webhooks[i] = r.toDomain(model)
	}
	return webhooks
}
