package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	invoicedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/invoice"
)

func (uc *DefaultInvoiceUsecase) CreateInvoice(ctx context.Context, input *invoicedto.CreateInvoiceInput) (*invoicedto.InvoiceOutput, error) {
	if input.Amount.IsZero() || input.Amount.IsNegative() {
		return nil, status.Error(codes.InvalidArgument, "amount must be positive")
	}
	if input.Currency == "" {
		return nil, status.Error(codes.InvalidArgument, "currency is required")
	}

	store, err := uc.StoreRepo.GetStoreByID(input.StoreID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, status.Error(codes.NotFound, "store not found")
		}
		return nil, err
	}

	// amount_sats is fixed here at creation and never recomputed: settlement
	// must not drift with the market after the invoice exists
	amountMintUnit, err := uc.Conversion.ConvertToMintUnit(
		ctx,
		input.Amount,
		input.Currency,
		store.MintUnit,
		store.ExchangeFeePercent,
		store.PriceProvider,
		store.FallbackPriceProvider,
	)
	if err != nil {
		if errors.Is(err, domain.ErrNoExchangeRate) {
			return nil, status.Error(codes.Unavailable, "no usable exchange rate for "+input.Currency)
		}
		return nil, status.Error(codes.Internal, "failed to convert amount: "+err.Error())
	}

	quote, err := uc.MintClients(store.MintURL).CreateMintQuote(ctx, amountMintUnit, store.MintUnit)
	if err != nil {
		return nil, status.Error(codes.Unavailable, "failed to create mint quote: "+err.Error())
	}

	amountSats, err := uc.Conversion.ConvertMintUnitToSats(ctx, amountMintUnit, store.MintUnit)
	if err != nil {
		return nil, status.Error(codes.Unavailable, "failed to compute settlement amount: "+err.Error())
	}

	now := time.Now()
	invoice := &domain.Invoice{
		ID:             uuid.New().String(),
		StoreID:        store.ID,
		Amount:         input.Amount,
		Currency:       input.Currency,
		AmountSats:     amountSats,
		PaymentRequest: quote.PaymentRequest,
		QuoteID:        quote.QuoteID,
		Status:         domain.StatusNew,
		RedirectURL:    input.RedirectURL,
		AutoRedirect:   input.AutoRedirect,
		ExpiresAt:      quote.ExpiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.InvoiceRepo.CreateInvoice(invoice); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.InvoicesCreatedTotal.WithLabelValues(store.ID, invoice.Currency).Inc()
	}

	uc.Dispatcher.FireEvent(store.ID, domain.EventInvoiceCreated, invoice)
	uc.publishEvent(invoice)

	return &invoicedto.InvoiceOutput{Invoice: invoice}, nil
}

func (uc *DefaultInvoiceUsecase) publishEvent(invoice *domain.Invoice) {
	if uc.Publisher == nil {
		return
	}
	err := uc.Publisher.PublishInvoiceEvent(domain.InvoiceEvent{
		InvoiceID:  invoice.ID,
		StoreID:    invoice.StoreID,
		Status:     string(invoice.Status),
		AmountSats: invoice.AmountSats,
		Currency:   invoice.Currency,
	})
	if err != nil {
		slog.Warn("failed to publish invoice event", "invoice_id", invoice.ID, "error", err.Error())
	}
}
