package notifier

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

const maxResponseBodyBytes = 1000

// DeliveryResult records the outcome of one webhook POST. StatusCode 0 means
// the request never got an HTTP response (transport error or timeout).
type DeliveryResult struct {
	StatusCode int
	Body       string
}

func (r *DeliveryResult) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type WebhookSender struct {
	client *http.Client
}

func NewWebhookSender() *WebhookSender {
	return &WebhookSender{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send performs a single synchronous POST. It never returns an error: the
// outcome goes into the delivery log and failures are recovered by manual
// redelivery, not by the caller.
func (s *WebhookSender) Send(url string, payload []byte, signature string) *DeliveryResult {
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return &DeliveryResult{StatusCode: 0, Body: truncate(err.Error())}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("BTCPay-Sig", signature)

	resp, err := s.client.Do(req)
	if err != nil {
		return &DeliveryResult{StatusCode: 0, Body: truncate(err.Error())}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))

	return &DeliveryResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

func truncate(s string) string {
	if len(s) > maxResponseBodyBytes {
		return s[:maxResponseBodyBytes]
	}
	return s
}
