package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/domain"
)

type CoingeckoProvider struct {
	client  *http.Client
	baseURL string
}

func NewCoingeckoProvider() *CoingeckoProvider {
	return &CoingeckoProvider{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.coingecko.com/api/v3",
	}
}

func (p *CoingeckoProvider) Name() string {
	return "coingecko"
}

func (p *CoingeckoProvider) GetBtcPrice(ctx context.Context, currency string) (float64, error) {
	vs := strings.ToLower(currency)
	url := fmt.Sprintf("%s/simple/price?ids=bitcoin&vs_currencies=%s", p.baseURL, vs)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get rates from coingecko: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var priceResponse map[string]map[string]float64
	if err := json.Unmarshal(body, &priceResponse); err != nil {
		return 0, fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	price, ok := priceResponse["bitcoin"][vs]
	if !ok || price <= 0 {
		return 0, domain.ErrCurrencyNotSupported
	}

	return price, nil
}
