package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeClient counts external calls so tests can verify cache behavior.
type fakeClient struct {
	mu         sync.Mutex
	prices     map[string]float64 // coinID -> price
	coins      []Coin
	priceCalls int
	listCalls  int
	fail       bool
}

func (f *fakeClient) SimplePrice(ctx context.Context, coinID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceCalls++
	if f.fail {
		return 0, errors.New("network down")
	}
	price, ok := f.prices[coinID]
	if !ok {
		return 0, errors.New("no price")
	}
	return price, nil
}

func (f *fakeClient) CoinsList(ctx context.Context) ([]Coin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.fail {
		return nil, errors.New("network down")
	}
	return f.coins, nil
}

func TestPrice_KnownSymbol(t *testing.T) {
	client := &fakeClient{prices: map[string]float64{"bitcoin": 50000}}
	oracle := NewOracle(client)

	price, ok := oracle.Price(context.Background(), "BTC")
	if !ok {
		t.Fatal("expected price for BTC")
	}
	if price != 50000 {
		t.Errorf("expected 50000, got %v", price)
	}
	if client.listCalls != 0 {
		t.Errorf("table-mapped symbol should not scan the catalog, got %d list calls", client.listCalls)
	}
}

func TestPrice_Normalization(t *testing.T) {
	client := &fakeClient{prices: map[string]float64{"ethereum": 3000}}
	oracle := NewOracle(client)

	for _, input := range []string{"eth", " ETH ", "Eth"} {
		price, ok := oracle.Price(context.Background(), input)
		if !ok || price != 3000 {
			t.Errorf("Price(%q) = %v, %v; want 3000, true", input, price, ok)
		}
	}
	if client.priceCalls != 1 {
		t.Errorf("normalized variants should share one cache entry, got %d external calls", client.priceCalls)
	}
}

func TestPrice_CacheHitSkipsExternal(t *testing.T) {
	client := &fakeClient{prices: map[string]float64{"solana": 150}}
	oracle := NewOracle(client)

	oracle.Price(context.Background(), "SOL")
	oracle.Price(context.Background(), "SOL")

	if client.priceCalls != 1 {
		t.Errorf("second call should hit the cache, got %d external calls", client.priceCalls)
	}
}

func TestPrice_FailureNotCached(t *testing.T) {
	client := &fakeClient{fail: true}
	oracle := NewOracle(client)

	if _, ok := oracle.Price(context.Background(), "BTC"); ok {
		t.Fatal("expected failure")
	}

	// Recovery: the failed lookup must be retried, not negative-cached
	client.fail = false
	client.prices = map[string]float64{"bitcoin": 42000}

	price, ok := oracle.Price(context.Background(), "BTC")
	if !ok || price != 42000 {
		t.Errorf("expected retry to succeed with 42000, got %v, %v", price, ok)
	}
}

func TestPrice_CatalogFallback(t *testing.T) {
	client := &fakeClient{
		prices: map[string]float64{"pepe-token": 0.0001},
		coins: []Coin{
			{ID: "something-else", Symbol: "other"},
			{ID: "pepe-token", Symbol: "pepe"},
		},
	}
	oracle := NewOracle(client)

	price, ok := oracle.Price(context.Background(), "PEPE")
	if !ok {
		t.Fatal("expected catalog fallback to resolve PEPE")
	}
	if price != 0.0001 {
		t.Errorf("expected 0.0001, got %v", price)
	}
	if client.listCalls != 1 {
		t.Errorf("expected one catalog scan, got %d", client.listCalls)
	}
}

func TestPrice_UnknownSymbol(t *testing.T) {
	client := &fakeClient{coins: []Coin{{ID: "bitcoin", Symbol: "btc"}}}
	oracle := NewOracle(client)

	if _, ok := oracle.Price(context.Background(), "NOTACOIN"); ok {
		t.Error("expected absent result for unknown symbol")
	}
	if _, ok := oracle.Price(context.Background(), ""); ok {
		t.Error("expected absent result for empty symbol")
	}
}

func TestPrice_ConcurrentAccess(t *testing.T) {
	client := &fakeClient{prices: map[string]float64{"bitcoin": 50000, "ethereum": 3000}}
	oracle := NewOracle(client)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			oracle.Price(context.Background(), "BTC")
			oracle.Price(context.Background(), "ETH")
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	price, ok := oracle.Price(context.Background(), "BTC")
	if !ok || price != 50000 {
		t.Errorf("expected 50000 after concurrent access, got %v, %v", price, ok)
	}
}
