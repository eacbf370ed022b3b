package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

// PollInvoice reconciles one invoice against its mint quote. Applying the
// same observed quote state twice is a no-op: every transition is a
// compare-and-set on the expected prior status, and events fire only for the
// caller that actually won the update.
func (uc *DefaultInvoiceUsecase) PollInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := uc.InvoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status.Terminal() {
		return invoice, nil
	}

	store, err := uc.StoreRepo.GetStoreByID(invoice.StoreID)
	if err != nil {
		return nil, err
	}

	state, err := uc.MintClients(store.MintURL).CheckMintQuote(ctx, invoice.QuoteID)
	if err != nil {
		// can't tell anything about the quote; leave the invoice alone
		slog.Warn("mint quote check failed",
			"invoice_id", invoice.ID,
			"quote_id", invoice.QuoteID,
			"error", err.Error())
		return invoice, nil
	}

	switch state {
	case domain.QuoteStatePaid:
		uc.applyTransition(invoice,
			[]domain.InvoiceStatus{domain.StatusNew},
			domain.StatusProcessing, "",
			domain.EventInvoiceReceivedPayment, domain.EventInvoiceProcessing)

	case domain.QuoteStateIssued:
		// settlement always passes through Processing, even when the quote
		// was already issued by the time we first looked
		if invoice.Status == domain.StatusNew {
			uc.applyTransition(invoice,
				[]domain.InvoiceStatus{domain.StatusNew},
				domain.StatusProcessing, "",
				domain.EventInvoiceReceivedPayment, domain.EventInvoiceProcessing)
		}
		uc.applyTransition(invoice,
			[]domain.InvoiceStatus{domain.StatusProcessing},
			domain.StatusSettled, "",
			domain.EventInvoiceSettled)

	case domain.QuoteStateUnpaid:
		if time.Now().After(invoice.ExpiresAt) {
			uc.applyTransition(invoice,
				[]domain.InvoiceStatus{domain.StatusNew},
				domain.StatusExpired, "",
				domain.EventInvoiceExpired)
		}
	}

	return invoice, nil
}

// SweepPendingInvoices polls every non-terminal invoice. Per-invoice
// failures are logged and never abort the sweep.
func (uc *DefaultInvoiceUsecase) SweepPendingInvoices(ctx context.Context) error {
	pending, err := uc.InvoiceRepo.FindPendingInvoices()
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.PendingInvoicesGauge.Set(float64(len(pending)))
	}

	for _, invoice := range pending {
		if _, err := uc.PollInvoice(ctx, invoice.ID); err != nil {
			slog.Warn("invoice sweep poll failed", "invoice_id", invoice.ID, "error", err.Error())
		}
	}
	return nil
}

// applyTransition performs the guarded status update and, only if this
// caller won it, fires the corresponding webhook events. A false with a nil
// error means the CAS lost; a non-nil error means the update itself failed.
func (uc *DefaultInvoiceUsecase) applyTransition(invoice *domain.Invoice, from []domain.InvoiceStatus, to domain.InvoiceStatus, additionalStatus string, events ...domain.EventType) (bool, error) {
	ok, err := uc.InvoiceRepo.UpdateInvoiceStatus(invoice.ID, from, to, additionalStatus)
	if err != nil {
		slog.Error("invoice status update failed",
			"invoice_id", invoice.ID,
			"to", string(to),
			"error", err.Error())
		return false, err
	}
	if !ok {
		return false, nil
	}

	invoice.Status = to
	if additionalStatus != "" {
		invoice.AdditionalStatus = additionalStatus
	}

	if uc.Metrics != nil {
		uc.Metrics.InvoiceTransitionsTotal.WithLabelValues(invoice.StoreID, string(to)).Inc()
	}

	for _, event := range events {
		uc.Dispatcher.FireEvent(invoice.StoreID, event, invoice)
	}
	uc.publishEvent(invoice)

	return true, nil
}
