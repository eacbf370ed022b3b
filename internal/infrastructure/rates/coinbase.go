package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

type CoinbaseProvider struct {
	client  *http.Client
	baseURL string
}

type CoinbaseSpotResponse struct {
	Data struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

func NewCoinbaseProvider() *CoinbaseProvider {
	return &CoinbaseProvider{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.coinbase.com/v2",
	}
}

func (p *CoinbaseProvider) Name() string {
	return "coinbase"
}

func (p *CoinbaseProvider) GetBtcPrice(ctx context.Context, currency string) (float64, error) {
	url := fmt.Sprintf("%s/prices/BTC-%s/spot", p.baseURL, strings.ToUpper(currency))

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get rates from coinbase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return 0, domain.ErrCurrencyNotSupported
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coinbase API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var spotResponse CoinbaseSpotResponse
	if err := json.Unmarshal(body, &spotResponse); err != nil {
		return 0, fmt.Errorf("failed to parse coinbase response: %w", err)
	}

	price, err := strconv.ParseFloat(spotResponse.Data.Amount, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse coinbase price %q: %w", spotResponse.Data.Amount, err)
	}
	if price <= 0 {
		return 0, domain.ErrCurrencyNotSupported
	}

	return price, nil
}
