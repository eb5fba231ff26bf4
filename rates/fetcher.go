package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// HTTPFetcher pulls the USDT/INR spot price from a quote API returning
// {"price": "..."} (Binance-style ticker payload).
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// NewHTTPFetcher builds the default upstream fetcher. The URL is env-driven
// so a deployment can point at a different quote source.
func NewHTTPFetcher() *HTTPFetcher {
	url := os.Getenv("RATE_API_URL")
	if url == "" {
		url = "https://api.binance.com/api/v3/ticker/price?symbol=USDTINR"
	}
	return &HTTPFetcher{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPFetcher) FetchSpotPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("quote API error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var ticker tickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, fmt.Errorf("failed to decode quote response: %w", err)
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("quote API returned non-numeric price %q", ticker.Price)
	}
	return price, nil
}
