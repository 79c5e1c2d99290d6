package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/giveaway-hunter/pkg/pricing"
)

type staticPrices map[string]float64 // coinID -> price

func (p staticPrices) SimplePrice(ctx context.Context, coinID string) (float64, error) {
	if price, ok := p[coinID]; ok {
		return price, nil
	}
	return 0, errors.New("no price")
}

func (p staticPrices) CoinsList(ctx context.Context) ([]pricing.Coin, error) {
	return nil, errors.New("catalog unavailable")
}

func newTestExtractor() *Extractor {
	return New(pricing.NewOracle(staticPrices{
		"bitcoin":  50000,
		"ethereum": 3000,
	}))
}

func TestExtract_AmountWithSymbol(t *testing.T) {
	e := newTestExtractor()

	info := e.Extract(context.Background(), "Win 100 BTC!")
	if info.Symbol != "BTC" {
		t.Fatalf("expected BTC, got %q", info.Symbol)
	}
	if info.EstimatedAmount == nil || *info.EstimatedAmount != 100 {
		t.Errorf("expected amount 100, got %v", info.EstimatedAmount)
	}
	if info.PriceUSD == nil || *info.PriceUSD != 50000 {
		t.Errorf("expected price 50000, got %v", info.PriceUSD)
	}
	if info.EstimatedValueUSD == nil || *info.EstimatedValueUSD != 100*50000 {
		t.Errorf("expected value 5000000, got %v", info.EstimatedValueUSD)
	}
}

func TestExtract_ThousandsSeparator(t *testing.T) {
	e := newTestExtractor()

	info := e.Extract(context.Background(), "Giveaway: 1,000 ETH to the winner!")
	if info.Symbol != "ETH" {
		t.Fatalf("expected ETH, got %q", info.Symbol)
	}
	if info.EstimatedAmount == nil || *info.EstimatedAmount != 1000 {
		t.Errorf("expected amount 1000, got %v", info.EstimatedAmount)
	}
}

func TestExtract_BareSymbol(t *testing.T) {
	e := newTestExtractor()

	info := e.Extract(context.Background(), "BTC giveaway happening now!")
	if info.Symbol != "BTC" {
		t.Fatalf("expected BTC, got %q", info.Symbol)
	}
	if info.EstimatedAmount != nil {
		t.Errorf("expected no amount, got %v", *info.EstimatedAmount)
	}
	if info.PriceUSD == nil {
		t.Error("bare symbol should still resolve a price")
	}
	if info.EstimatedValueUSD != nil {
		t.Error("value must be absent without an amount")
	}
}

func TestExtract_NoToken(t *testing.T) {
	e := newTestExtractor()

	info := e.Extract(context.Background(), "Random text without any mention")
	if info.Symbol != "" || info.EstimatedAmount != nil || info.PriceUSD != nil || info.EstimatedValueUSD != nil {
		t.Errorf("expected empty TokenInfo, got %+v", info)
	}
}

func TestExtract_FirstOccurrenceWins(t *testing.T) {
	e := newTestExtractor()

	// Earlier mention wins over a larger later amount, by design
	info := e.Extract(context.Background(), "Drop 5 ETH now, then 9000 BTC later")
	if info.Symbol != "ETH" {
		t.Errorf("expected first occurrence ETH, got %q", info.Symbol)
	}
	if info.EstimatedAmount == nil || *info.EstimatedAmount != 5 {
		t.Errorf("expected amount 5, got %v", info.EstimatedAmount)
	}
}

func TestExtract_FallbackUsesListOrder(t *testing.T) {
	e := newTestExtractor()

	// Both appear without amounts; BTC precedes ETH in the fixed list even
	// though ETH appears first in the text.
	info := e.Extract(context.Background(), "ETH and BTC giveaways!")
	if info.Symbol != "BTC" {
		t.Errorf("expected list-order winner BTC, got %q", info.Symbol)
	}
}

func TestExtract_PriceLookupFailure(t *testing.T) {
	e := newTestExtractor()

	// XYZQ resolves no price; amount is still reported, value stays absent
	info := e.Extract(context.Background(), "Win 500 XYZQ tokens!")
	if info.Symbol != "XYZQ" {
		t.Fatalf("expected XYZQ, got %q", info.Symbol)
	}
	if info.EstimatedAmount == nil || *info.EstimatedAmount != 500 {
		t.Errorf("expected amount 500, got %v", info.EstimatedAmount)
	}
	if info.PriceUSD != nil || info.EstimatedValueUSD != nil {
		t.Error("price and value must be absent when lookup fails")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor()
	text := "Win 100 BTC!"

	first := e.Extract(context.Background(), text)
	second := e.Extract(context.Background(), text)

	if first.Symbol != second.Symbol {
		t.Errorf("symbols differ: %q vs %q", first.Symbol, second.Symbol)
	}
	if *first.EstimatedAmount != *second.EstimatedAmount ||
		*first.PriceUSD != *second.PriceUSD ||
		*first.EstimatedValueUSD != *second.EstimatedValueUSD {
		t.Error("repeated extraction produced different results")
	}
}

func TestExtract_DecimalAmount(t *testing.T) {
	e := newTestExtractor()

	info := e.Extract(context.Background(), "Giving away 0.5 BTC to one lucky follower")
	if info.EstimatedAmount == nil || *info.EstimatedAmount != 0.5 {
		t.Errorf("expected amount 0.5, got %v", info.EstimatedAmount)
	}
}

func TestExtract_EmptyAndGarbledInput(t *testing.T) {
	e := newTestExtractor()

	for _, text := range []string{"", "\x00\xff\xfe", "🎉🎉🎉"} {
		info := e.Extract(context.Background(), text)
		if info.Symbol != "" {
			t.Errorf("Extract(%q) found token %q in garbage", text, info.Symbol)
		}
	}
}
