package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

// ClientFactory builds a mint client for a store's configured mint URL.
type ClientFactory func(mintURL string) domain.MintClient

func DefaultClientFactory(mintURL string) domain.MintClient {
	return NewHTTPMintClient(mintURL)
}

type HTTPMintClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPMintClient(baseURL string) *HTTPMintClient {
	return &HTTPMintClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type mintQuoteRequest struct {
	Amount uint64 `json:"amount"`
	Unit   string `json:"unit"`
}

type mintQuoteResponse struct {
	Quote   string `json:"quote"`
	Request string `json:"request"`
	State   string `json:"state"`
	Expiry  int64  `json:"expiry"`
}

func (c *HTTPMintClient) CreateMintQuote(ctx context.Context, amount uint64, unit string) (*domain.MintQuote, error) {
	body, err := json.Marshal(mintQuoteRequest{Amount: amount, Unit: strings.ToLower(unit)})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/v1/mint/quote/bolt11"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request mint quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mint returned status: %d", resp.StatusCode)
	}

	quote, err := c.parseQuote(resp.Body)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (c *HTTPMintClient) CheckMintQuote(ctx context.Context, quoteID string) (domain.QuoteState, error) {
	url := fmt.Sprintf("%s/v1/mint/quote/bolt11/%s", c.baseURL, quoteID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to check mint quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mint returned status: %d", resp.StatusCode)
	}

	quote, err := c.parseQuote(resp.Body)
	if err != nil {
		return "", err
	}
	return quote.State, nil
}

func (c *HTTPMintClient) parseQuote(r io.Reader) (*domain.MintQuote, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var quoteResponse mintQuoteResponse
	if err := json.Unmarshal(body, &quoteResponse); err != nil {
		return nil, fmt.Errorf("failed to parse mint response: %w", err)
	}

	state := domain.QuoteStateUnpaid
	switch strings.ToUpper(quoteResponse.State) {
	case "PAID":
		state = domain.QuoteStatePaid
	case "ISSUED":
		state = domain.QuoteStateIssued
	}

	return &domain.MintQuote{
		QuoteID:        quoteResponse.Quote,
		PaymentRequest: quoteResponse.Request,
		State:          state,
		ExpiresAt:      time.Unix(quoteResponse.Expiry, 0),
	}, nil
}
