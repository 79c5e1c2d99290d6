package extractor

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/giveaway-hunter/pkg/pricing"
)

// amountSymbolRe matches a numeric amount (with optional thousands separators
// and decimal point) followed by a 2-10 character uppercase run, e.g.
// "100 BTC" or "1,000.5ETH". Applied to the uppercased text.
var amountSymbolRe = regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*([A-Z]{2,10})`)

// TokenInfo is the structured result of scanning a post for a token mention.
// EstimatedValueUSD is set only when both EstimatedAmount and PriceUSD are.
type TokenInfo struct {
	Symbol            string   `json:"symbol"` // "" when no token detected
	EstimatedAmount   *float64 `json:"estimated_amount"`
	PriceUSD          *float64 `json:"price_usd"`
	EstimatedValueUSD *float64 `json:"estimated_value_usd"`
}

func (t TokenInfo) HasPrice() bool { return t.PriceUSD != nil }

// Extractor scans free text for token mentions and resolves their value
// through the price oracle.
type Extractor struct {
	oracle *pricing.Oracle
}

func New(oracle *pricing.Oracle) *Extractor {
	return &Extractor{oracle: oracle}
}

// Extract finds the advertised token in a post. Amount+symbol pairs win over
// bare symbol mentions; among pairs the earliest in the text wins, while the
// bare-symbol fallback picks the first entry of the fixed ticker list that
// appears anywhere in the text.
func (e *Extractor) Extract(ctx context.Context, text string) TokenInfo {
	upper := strings.ToUpper(text)

	for _, m := range amountSymbolRe.FindAllStringSubmatch(upper, -1) {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue // malformed numeric, not a match
		}

		info := TokenInfo{Symbol: m[2], EstimatedAmount: &amount}
		if price, ok := e.oracle.Price(ctx, m[2]); ok {
			info.PriceUSD = &price
			value := amount * price
			info.EstimatedValueUSD = &value
		}
		return info
	}

	for _, ticker := range pricing.KnownTickers() {
		if !strings.Contains(upper, ticker) {
			continue
		}
		info := TokenInfo{Symbol: ticker}
		if price, ok := e.oracle.Price(ctx, ticker); ok {
			info.PriceUSD = &price
		}
		return info
	}

	return TokenInfo{}
}
