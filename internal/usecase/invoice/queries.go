package usecase

import (
	"github.com/cashupay/cashu-gateway-service/internal/domain"
	invoicedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/invoice"
)

func (uc *DefaultInvoiceUsecase) GetInvoiceByID(invoiceID string) (*domain.Invoice, error) {
	return uc.InvoiceRepo.GetInvoiceByID(invoiceID)
}

func (uc *DefaultInvoiceUsecase) GetStoreInvoices(storeID string, page, limit int32) (*invoicedto.GetStoreInvoicesOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	invoices, total, err := uc.InvoiceRepo.GetInvoicesByStoreID(storeID, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int32(total) / limit
	if int32(total)%limit > 0 {
		totalPages++
	}

	return &invoicedto.GetStoreInvoicesOutput{
		Invoices: invoices,
		Pagination: invoicedto.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   int32(total),
			ItemsPerPage: limit,
		},
	}, nil
}
