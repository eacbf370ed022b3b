package usecase

import (
	"context"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/metrics"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/mint"
	"github.com/cashupay/cashu-gateway-service/internal/usecase"
	invoicedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/invoice"
)

type InvoiceUsecase interface {
	CreateInvoice(ctx context.Context, input *invoicedto.CreateInvoiceInput) (*invoicedto.InvoiceOutput, error)
	PollInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, input *invoicedto.UpdateInvoiceStatusInput) (*domain.Invoice, error)
	SweepPendingInvoices(ctx context.Context) error

	GetInvoiceByID(invoiceID string) (*domain.Invoice, error)
	GetStoreInvoices(storeID string, page, limit int32) (*invoicedto.GetStoreInvoicesOutput, error)
}

type DefaultInvoiceUsecase struct {
	InvoiceRepo domain.InvoiceRepository
	StoreRepo   domain.StoreRepository
	Conversion  usecase.ConversionUsecase
	Dispatcher  usecase.WebhookDispatcher
	MintClients mint.ClientFactory
	Publisher   domain.EventPublisher
	Metrics     *metrics.GatewayMetrics
}

func NewDefaultInvoiceUsecase(
	invoiceRepo domain.InvoiceRepository,
	storeRepo domain.StoreRepository,
	conversion usecase.ConversionUsecase,
	dispatcher usecase.WebhookDispatcher,
	mintClients mint.ClientFactory,
	publisher domain.EventPublisher,
	gatewayMetrics *metrics.GatewayMetrics) *DefaultInvoiceUsecase {

	return &DefaultInvoiceUsecase{
		InvoiceRepo: invoiceRepo,
		StoreRepo:   storeRepo,
		Conversion:  conversion,
		Dispatcher:  dispatcher,
		MintClients: mintClients,
		Publisher:   publisher,
		Metrics:     gatewayMetrics,
	}
}
