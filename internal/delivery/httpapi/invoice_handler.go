package httpapi

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/trigger"
	invoicedto "github.com/cashupay/cashu-gateway-service/internal/usecase/dto/invoice"
	invoiceusecase "github.com/cashupay/cashu-gateway-service/internal/usecase/invoice"
)

type InvoiceHandler struct {
	invoiceUsecase invoiceusecase.InvoiceUsecase
	trigger        *trigger.BackgroundTrigger
}

func NewInvoiceHandler(invoiceUsecase invoiceusecase.InvoiceUsecase, bgTrigger *trigger.BackgroundTrigger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		trigger:        bgTrigger,
	}
}

type createInvoiceRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	RedirectURL  string `json:"redirectUrl"`
	AutoRedirect bool   `json:"autoRedirect"`
}

type updateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

type invoiceResponse struct {
	ID               string    `json:"id"`
	StoreID          string    `json:"storeId"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	AmountSats       uint64    `json:"amountSats"`
	PaymentRequest   string    `json:"paymentRequest"`
	Status           string    `json:"status"`
	AdditionalStatus string    `json:"additionalStatus,omitempty"`
	RedirectURL      string    `json:"redirectUrl,omitempty"`
	AutoRedirect     bool      `json:"autoRedirect"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
}

type paginationResponse struct {
	CurrentPage  int32 `json:"currentPage"`
	TotalPages   int32 `json:"totalPages"`
	TotalItems   int32 `json:"totalItems"`
	ItemsPerPage int32 `json:"itemsPerPage"`
}

type invoiceListResponse struct {
	Invoices   []invoiceResponse  `json:"invoices"`
	Pagination paginationResponse `json:"pagination"`
}

func toInvoiceResponse(invoice *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:               invoice.ID,
		StoreID:          invoice.StoreID,
		Amount:           invoice.Amount.String(),
		Currency:         invoice.Currency,
		AmountSats:       invoice.AmountSats,
		PaymentRequest:   invoice.PaymentRequest,
		Status:           string(invoice.Status),
		AdditionalStatus: invoice.AdditionalStatus,
		RedirectURL:      invoice.RedirectURL,
		AutoRedirect:     invoice.AutoRedirect,
		ExpiresAt:        invoice.ExpiresAt,
		CreatedAt:        invoice.CreatedAt,
	}
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid amount"})
		return
	}

	output, err := h.invoiceUsecase.CreateInvoice(r.Context(), &invoicedto.CreateInvoiceInput{
		StoreID:      r.PathValue("storeId"),
		Amount:       amount,
		Currency:     req.Currency,
		RedirectURL:  req.RedirectURL,
		AutoRedirect: req.AutoRedirect,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvoiceResponse(output.Invoice))
}

// GetInvoice reconciles the invoice against its mint before answering, so a
// checkout page polling this endpoint observes settlement without waiting for
// the next sweep. Each read also kicks the background maintenance loose.
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceUsecase.PollInvoice(r.Context(), r.PathValue("invoiceId"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.trigger.Fire()

	writeJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

func (h *InvoiceHandler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req updateInvoiceStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.UpdateInvoiceStatus(r.Context(), &invoicedto.UpdateInvoiceStatusInput{
		InvoiceID: r.PathValue("invoiceId"),
		Status:    req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

func (h *InvoiceHandler) GetStoreInvoices(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationParams(r)
	output, err := h.invoiceUsecase.GetStoreInvoices(r.PathValue("storeId"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	invoices := make([]invoiceResponse, 0, len(output.Invoices))
	for _, invoice := range output.Invoices {
		invoices = append(invoices, toInvoiceResponse(invoice))
	}

	writeJSON(w, http.StatusOK, invoiceListResponse{
		Invoices: invoices,
		Pagination: paginationResponse{
			CurrentPage:  output.Pagination.CurrentPage,
			TotalPages:   output.Pagination.TotalPages,
			TotalItems:   output.Pagination.TotalItems,
			ItemsPerPage: output.Pagination.ItemsPerPage,
		},
	})
}
