package pricing

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Coin is one entry of the provider's full catalog.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// Client resolves canonical coin ids to prices. Implementations may hit the
// network; the Oracle converts every failure into an absent result.
type Client interface {
	SimplePrice(ctx context.Context, coinID string) (float64, error)
	CoinsList(ctx context.Context) ([]Coin, error)
}

// symbolToID maps well-known tickers straight to coin ids, skipping the
// full-catalog scan for the common case.
var symbolToID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"MATIC": "matic-network",
	"DOT":   "polkadot",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
}

// KnownTickers returns the fixed ticker list in its canonical order. The
// extractor's bare-symbol fallback depends on this order.
func KnownTickers() []string {
	return []string{
		"BTC", "ETH", "BNB", "SOL", "ADA", "XRP", "DOGE",
		"USDT", "USDC", "MATIC", "DOT", "AVAX", "LINK", "UNI", "ATOM",
	}
}

// Oracle caches USD prices by ticker for the process lifetime. Only successful
// resolutions are cached; a symbol that failed to resolve is re-attempted on
// the next call.
type Oracle struct {
	client Client

	mu    sync.Mutex
	cache map[string]float64
}

func NewOracle(client Client) *Oracle {
	return &Oracle{
		client: client,
		cache:  make(map[string]float64),
	}
}

// Price returns the current USD unit price for a ticker, or false when it
// cannot be resolved. Lookup failures never propagate to the caller.
func (o *Oracle) Price(ctx context.Context, symbol string) (float64, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, false
	}

	o.mu.Lock()
	if price, ok := o.cache[symbol]; ok {
		o.mu.Unlock()
		return price, true
	}
	o.mu.Unlock()

	price, err := o.resolve(ctx, symbol)
	if err != nil {
		log.Debug().Err(err).Str("symbol", symbol).Msg("price lookup failed")
		return 0, false
	}

	o.mu.Lock()
	o.cache[symbol] = price
	o.mu.Unlock()

	return price, true
}

func (o *Oracle) resolve(ctx context.Context, symbol string) (float64, error) {
	coinID := symbolToID[symbol]

	if coinID == "" {
		coins, err := o.client.CoinsList(ctx)
		if err != nil {
			return 0, err
		}
		for _, c := range coins {
			if strings.EqualFold(c.Symbol, symbol) {
				coinID = c.ID
				break
			}
		}
		if coinID == "" {
			return 0, ErrUnknownSymbol
		}
	}

	return o.client.SimplePrice(ctx, coinID)
}
