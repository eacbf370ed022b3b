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

type KrakenProvider struct {
	client  *http.Client
	baseURL string
}

type KrakenTicker struct {
	// c holds [last trade price, lot volume]
	Close []string `json:"c"`
}

type KrakenResponse struct {
	Error  []string                `json:"error"`
	Result map[string]KrakenTicker `json:"result"`
}

func NewKrakenProvider() *KrakenProvider {
	return &KrakenProvider{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.kraken.com/0",
	}
}

func (p *KrakenProvider) Name() string {
	return "kraken"
}

func (p *KrakenProvider) GetBtcPrice(ctx context.Context, currency string) (float64, error) {
	pair := "XBT" + strings.ToUpper(currency)
	url := fmt.Sprintf("%s/public/Ticker?pair=%s", p.baseURL, pair)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get rates from kraken: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("kraken API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var krakenResponse KrakenResponse
	if err := json.Unmarshal(body, &krakenResponse); err != nil {
		return 0, fmt.Errorf("failed to parse kraken response: %w", err)
	}

	for _, apiErr := range krakenResponse.Error {
		// missing trading pair is a normal outcome, not a feed failure
		if strings.Contains(apiErr, "Unknown asset pair") {
			return 0, domain.ErrCurrencyNotSupported
		}
	}
	if len(krakenResponse.Error) > 0 {
		return 0, fmt.Errorf("kraken API error: %s", krakenResponse.Error[0])
	}

	for _, ticker := range krakenResponse.Result {
		if len(ticker.Close) == 0 {
			continue
		}
		price, err := strconv.ParseFloat(ticker.Close[0], 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse kraken price %q: %w", ticker.Close[0], err)
		}
		if price > 0 {
			return price, nil
		}
	}

	return 0, domain.ErrCurrencyNotSupported
}
