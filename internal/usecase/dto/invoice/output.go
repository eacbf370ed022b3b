package invoicedto

import (
	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

type InvoiceOutput struct {
	Invoice *domain.Invoice
}

type GetStoreInvoicesOutput struct {
	Invoices   []*domain.Invoice
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int32
	TotalPages   int32
	TotalItems   int32
	ItemsPerPage int32
}
