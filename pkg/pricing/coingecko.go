package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUnknownSymbol means neither the fixed ticker table nor the full catalog
// knows the symbol.
var ErrUnknownSymbol = errors.New("unknown token symbol")

// CoinGecko is the production price Client. Unauthenticated access works for
// low volume; an API key raises the rate limit.
type CoinGecko struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCoinGecko(baseURL, apiKey string) *CoinGecko {
	return &CoinGecko{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *CoinGecko) SimplePrice(ctx context.Context, coinID string) (float64, error) {
	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, url.QueryEscape(coinID))

	var data map[string]map[string]float64
	if err := c.getJSON(ctx, u, &data); err != nil {
		return 0, err
	}

	usd, ok := data[coinID]["usd"]
	if !ok {
		return 0, fmt.Errorf("no usd price for %s", coinID)
	}
	return usd, nil
}

func (c *CoinGecko) CoinsList(ctx context.Context) ([]Coin, error) {
	var coins []Coin
	if err := c.getJSON(ctx, c.baseURL+"/coins/list", &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

func (c *CoinGecko) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		return fmt.Errorf("rate limited")
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
