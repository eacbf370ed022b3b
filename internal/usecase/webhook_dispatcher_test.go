package usecase

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/notifier"
)

type fakeWebhookRepo struct {
	webhooks []*domain.Webhook
}

func (r *fakeWebhookRepo) CreateWebhook(webhook *domain.Webhook) error {
	r.webhooks = append(r.webhooks, webhook)
	return nil
}

func (r *fakeWebhookRepo) UpdateWebhook(webhook *domain.Webhook) error { return nil }

func (r *fakeWebhookRepo) DeleteWebhook(id string) error { return nil }

func (r *fakeWebhookRepo) GetWebhookByID(id string) (*domain.Webhook, error) {
	for _, w := range r.webhooks {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domain.ErrWebhookNotFound
}

func (r *fakeWebhookRepo) GetWebhooksByStoreID(storeID string) ([]*domain.Webhook, error) {
	return r.webhooks, nil
}

func (r *fakeWebhookRepo) GetEnabledWebhooksByStoreID(storeID string) ([]*domain.Webhook, error) {
	enabled := make([]*domain.Webhook, 0, len(r.webhooks))
	for _, w := range r.webhooks {
		if w.StoreID == storeID && w.Enabled {
			enabled = append(enabled, w)
		}
	}
	return enabled, nil
}

type fakeDeliveryRepo struct {
	mu         sync.Mutex
	deliveries []*domain.WebhookDelivery
}

func (r *fakeDeliveryRepo) CreateDelivery(delivery *domain.WebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, delivery)
	return nil
}

func (r *fakeDeliveryRepo) GetDeliveryByID(id string) (*domain.WebhookDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.deliveries {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrDeliveryNotFound
}

func (r *fakeDeliveryRepo) GetDeliveriesByWebhookID(webhookID string, page, limit int32) ([]*domain.WebhookDelivery, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deliveries, int64(len(r.deliveries)), nil
}

func testInvoice() *domain.Invoice {
	now := time.Now()
	return &domain.Invoice{
		ID:         "inv-1",
		StoreID:    "store-1",
		Amount:     decimal.NewFromFloat(10.00),
		Currency:   "EUR",
		AmountSats: 20000,
		Status:     domain.StatusSettled,
		CreatedAt:  now,
		ExpiresAt:  now.Add(15 * time.Minute),
	}
}

func TestFireEventSignsAndDeliversPayload(t *testing.T) {
	var (
		mu       sync.Mutex
		received []byte
		sig      string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		received = body
		sig = r.Header.Get("BTCPay-Sig")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhookRepo := &fakeWebhookRepo{webhooks: []*domain.Webhook{{
		ID:      "wh-1",
		StoreID: "store-1",
		URL:     server.URL,
		Secret:  "s3cret",
		Enabled: true,
	}}}
	deliveryRepo := &fakeDeliveryRepo{}
	dispatcher := NewDefaultWebhookDispatcher(webhookRepo, deliveryRepo, notifier.NewWebhookSender(), nil)

	dispatcher.FireEvent("store-1", domain.EventInvoiceSettled, testInvoice())

	require.NotEmpty(t, received)
	assert.Equal(t, SignPayload("s3cret", received), sig)

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(received, &payload))
	assert.Equal(t, domain.EventInvoiceSettled, payload.Type)
	assert.Equal(t, "inv-1", payload.InvoiceID)
	assert.Equal(t, payload.DeliveryID, payload.OriginalDeliveryID)
	assert.False(t, payload.IsRedelivery)
	require.NotNil(t, payload.Metadata)
	assert.Equal(t, "SETTLED", payload.Metadata.Status)
	assert.Equal(t, uint64(20000), payload.Metadata.AmountSats)

	require.Len(t, deliveryRepo.deliveries, 1)
	assert.Equal(t, http.StatusOK, deliveryRepo.deliveries[0].HTTPStatus)
}

func TestFireEventSkipsUnsubscribedAndDisabledWebhooks(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhookRepo := &fakeWebhookRepo{webhooks: []*domain.Webhook{
		{
			ID:      "wh-all",
			StoreID: "store-1",
			URL:     server.URL,
			Secret:  "a",
			Enabled: true,
		},
		{
			ID:      "wh-settled-only",
			StoreID: "store-1",
			URL:     server.URL,
			Secret:  "b",
			Events:  []domain.EventType{domain.EventInvoiceSettled},
			Enabled: true,
		},
		{
			ID:      "wh-disabled",
			StoreID: "store-1",
			URL:     server.URL,
			Secret:  "c",
			Enabled: false,
		},
	}}
	deliveryRepo := &fakeDeliveryRepo{}
	dispatcher := NewDefaultWebhookDispatcher(webhookRepo, deliveryRepo, notifier.NewWebhookSender(), nil)

	dispatcher.FireEvent("store-1", domain.EventInvoiceExpired, testInvoice())

	// only the catch-all webhook wants InvoiceExpired
	assert.Equal(t, 1, hits)
	assert.Len(t, deliveryRepo.deliveries, 1)
	assert.Equal(t, "wh-all", deliveryRepo.deliveries[0].WebhookID)
}

func TestFireEventOmitsMetadataForLifecycleEvents(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhookRepo := &fakeWebhookRepo{webhooks: []*domain.Webhook{{
		ID:      "wh-1",
		StoreID: "store-1",
		URL:     server.URL,
		Secret:  "s3cret",
		Enabled: true,
	}}}
	dispatcher := NewDefaultWebhookDispatcher(webhookRepo, &fakeDeliveryRepo{}, notifier.NewWebhookSender(), nil)

	dispatcher.FireEvent("store-1", domain.EventInvoiceExpired, testInvoice())

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(received, &payload))
	assert.Nil(t, payload.Metadata)
}

func TestFireEventRecordsFailedDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	webhookRepo := &fakeWebhookRepo{webhooks: []*domain.Webhook{{
		ID:      "wh-1",
		StoreID: "store-1",
		URL:     server.URL,
		Secret:  "s3cret",
		Enabled: true,
	}}}
	deliveryRepo := &fakeDeliveryRepo{}
	dispatcher := NewDefaultWebhookDispatcher(webhookRepo, deliveryRepo, notifier.NewWebhookSender(), nil)

	dispatcher.FireEvent("store-1", domain.EventInvoiceSettled, testInvoice())

	require.Len(t, deliveryRepo.deliveries, 1)
	assert.Equal(t, http.StatusInternalServerError, deliveryRepo.deliveries[0].HTTPStatus)
	assert.Equal(t, "boom", deliveryRepo.deliveries[0].ResponseBody)
}

func TestRedeliverPreservesOriginalDeliveryChain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhookRepo := &fakeWebhookRepo{webhooks: []*domain.Webhook{{
		ID:      "wh-1",
		StoreID: "store-1",
		URL:     server.URL,
		Secret:  "s3cret",
		Enabled: true,
	}}}
	deliveryRepo := &fakeDeliveryRepo{}
	dispatcher := NewDefaultWebhookDispatcher(webhookRepo, deliveryRepo, notifier.NewWebhookSender(), nil)

	dispatcher.FireEvent("store-1", domain.EventInvoiceSettled, testInvoice())
	require.Len(t, deliveryRepo.deliveries, 1)
	original := deliveryRepo.deliveries[0]

	delivered, err := dispatcher.Redeliver(original.ID)
	require.NoError(t, err)
	assert.True(t, delivered)

	require.Len(t, deliveryRepo.deliveries, 2)
	redelivery := deliveryRepo.deliveries[1]
	assert.NotEqual(t, original.ID, redelivery.ID)
	assert.Equal(t, original.ID, redelivery.OriginalDeliveryID)
	assert.True(t, redelivery.IsRedelivery)
	assert.Equal(t, original.EventType, redelivery.EventType)

	// the first audit row stays untouched
	assert.False(t, original.IsRedelivery)
	assert.Equal(t, original.ID, original.OriginalDeliveryID)

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(redelivery.Payload), &payload))
	assert.True(t, payload.IsRedelivery)
	assert.Equal(t, original.ID, payload.OriginalDeliveryID)
}

func TestRedeliverUnknownDelivery(t *testing.T) {
	dispatcher := NewDefaultWebhookDispatcher(&fakeWebhookRepo{}, &fakeDeliveryRepo{}, notifier.NewWebhookSender(), nil)

	_, err := dispatcher.Redeliver("missing")
	assert.ErrorIs(t, err, domain.ErrDeliveryNotFound)
}
