package usecase

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	invoicedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/invoice"
)

// UpdateInvoiceStatus is the explicit status-update operation. Only Invalid
// and Settled are accepted, and only from New or Processing; anything else
// is a validation error, never a silent no-op.
func (uc *DefaultInvoiceUsecase) UpdateInvoiceStatus(ctx context.Context, input *invoicedto.UpdateInvoiceStatusInput) (*domain.Invoice, error) {
	target := domain.InvoiceStatus(strings.ToUpper(input.Status))

	var event domain.EventType
	switch target {
	case domain.StatusInvalid:
		event = domain.EventInvoiceInvalid
	case domain.StatusSettled:
		event = domain.EventInvoiceSettled
	default:
		return nil, status.Error(codes.InvalidArgument, "status must be Invalid or Settled")
	}

	invoice, err := uc.InvoiceRepo.GetInvoiceByID(input.InvoiceID)
	if err != nil {
		return nil, status.Error(codes.NotFound, "invoice not found")
	}

	ok, err := uc.applyTransition(invoice,
		[]domain.InvoiceStatus{domain.StatusNew, domain.StatusProcessing},
		target, "marked",
		event)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to update invoice status")
	}
	if !ok {
		return nil, status.Errorf(codes.FailedPrecondition,
			"invoice in status %s cannot be marked %s", invoice.Status, target)
	}

	return invoice, nil
}
