package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/models"
)

type DefaultInvoiceRepository struct {
	db *gorm.DB
}

func NewDefaultInvoiceRepository(db *gorm.DB) *DefaultInvoiceRepository {
	return &DefaultInvoiceRepository{db: db}
}

func (r *DefaultInvoiceRepository) CreateInvoice(invoice *domain.Invoice) error {
	return r.db.Create(r.toModel(invoice)).Error
}

func (r *DefaultInvoiceRepository) GetInvoiceByID(id string) (*domain.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultInvoiceRepository) GetInvoicesByStoreID(storeID string, page, limit int32) ([]*domain.Invoice, int64, error) {
	var invoiceModels []*models.InvoiceModel
	var total int64

	query := r.db.Model(&models.InvoiceModel{}).Where("store_id = ?", storeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]*domain.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = r.toDomain(model)
	}
	return invoices, total, nil
}

// UpdateInvoiceStatus is a compare-and-set: the UPDATE is guarded by the
// expected prior statuses so that two concurrent polls applying the same
// observed quote state transition the row exactly once.
func (r *DefaultInvoiceRepository) UpdateInvoiceStatus(id string, from []domain.InvoiceStatus, to domain.InvoiceStatus, additionalStatus string) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if additionalStatus != "" {
		updates["additional_status"] = additionalStatus
	}

	res := r.db.Model(&models.InvoiceModel{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *DefaultInvoiceRepository) FindPendingInvoices() ([]*domain.Invoice, error) {
	var invoiceModels []*models.InvoiceModel

	if err := r.db.
		Where("status IN ?", []domain.InvoiceStatus{domain.StatusNew, domain.StatusProcessing}).
		Order("created_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]*domain.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = r.toDomain(model)
	}
	return invoices, nil
}

func (r *DefaultInvoiceRepository) toModel(invoice *domain.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:               invoice.ID,
		StoreID:          invoice.StoreID,
		Amount:           invoice.Amount,
		Currency:         invoice.Currency,
		AmountSats:       invoice.AmountSats,
		PaymentRequest:   invoice.PaymentRequest,
		QuoteID:          invoice.QuoteID,
		Status:           invoice.Status,
		AdditionalStatus: invoice.AdditionalStatus,
		RedirectURL:      invoice.RedirectURL,
		AutoRedirect:     invoice.AutoRedirect,
		ExpiresAt:        invoice.ExpiresAt,
		CreatedAt:        invoice.CreatedAt,
		UpdatedAt:        invoice.UpdatedAt,
	}
}

func (r *DefaultInvoiceRepository) toDomain(model *models.InvoiceModel) *domain.Invoice {
	return &domain.Invoice{
		ID:               model.ID,
		StoreID:          model.StoreID,
		Amount:           model.Amount,
		Currency:         model.Currency,
		AmountSats:       model.AmountSats,
		PaymentRequest:   model.PaymentRequest,
		QuoteID:          model.QuoteID,
		Status:           model.Status,
		AdditionalStatus: model.AdditionalStatus,
		RedirectURL:      model.RedirectURL,
		AutoRedirect:     model.AutoRedirect,
		ExpiresAt:        model.ExpiresAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
