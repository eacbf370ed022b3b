package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	storeHandler *StoreHandler,
	invoiceHandler *InvoiceHandler,
	webhookHandler *WebhookHandler,
	maintenanceHandler *MaintenanceHandler) *http.ServeMux {

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/stores", storeHandler.CreateStore)
	mux.HandleFunc("GET /api/v1/stores", storeHandler.GetStores)
	mux.HandleFunc("GET /api/v1/stores/{storeId}", storeHandler.GetStore)
	mux.HandleFunc("PUT /api/v1/stores/{storeId}", storeHandler.UpdateStore)
	mux.HandleFunc("DELETE /api/v1/stores/{storeId}", storeHandler.DeleteStore)

	mux.HandleFunc("POST /api/v1/stores/{storeId}/invoices", invoiceHandler.CreateInvoice)
	mux.HandleFunc("GET /api/v1/stores/{storeId}/invoices", invoiceHandler.GetStoreInvoices)
	mux.HandleFunc("GET /api/v1/invoices/{invoiceId}", invoiceHandler.GetInvoice)
	mux.HandleFunc("POST /api/v1/invoices/{invoiceId}/status", invoiceHandler.UpdateInvoiceStatus)

	mux.HandleFunc("POST /api/v1/stores/{storeId}/webhooks", webhookHandler.CreateWebhook)
	mux.HandleFunc("GET /api/v1/stores/{storeId}/webhooks", webhookHandler.GetStoreWebhooks)
	mux.HandleFunc("GET /api/v1/webhooks/{webhookId}", webhookHandler.GetWebhook)
	mux.HandleFunc("PUT /api/v1/webhooks/{webhookId}", webhookHandler.UpdateWebhook)
	mux.HandleFunc("DELETE /api/v1/webhooks/{webhookId}", webhookHandler.DeleteWebhook)
	mux.HandleFunc("GET /api/v1/webhooks/{webhookId}/deliveries", webhookHandler.GetWebhookDeliveries)
	mux.HandleFunc("POST /api/v1/webhooks/deliveries/{deliveryId}/redeliver", webhookHandler.RedeliverWebhook)

	mux.HandleFunc("POST /maintenance/sync", maintenanceHandler.Sync)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}
