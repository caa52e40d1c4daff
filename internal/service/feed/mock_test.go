package feed

import (
	"context"
	"math/rand"
	"testing"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

func TestMockFetchUniverse(t *testing.T) {
	p := NewMockProvider(rand.New(rand.NewSource(1)))
	snaps, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := len(bistListings) + len(nasdaqListings) + len(cryptoListings) + len(macroListings)
	if len(snaps) != want {
		t.Fatalf("universe size = %d, want %d", len(snaps), want)
	}

	for _, sym := range []string{"THYAO", "AAPL", "BTC-USD", "TUR", "VIX", "GLD"} {
		if _, ok := snaps[sym]; !ok {
			t.Fatalf("missing %s", sym)
		}
	}
}

func TestMockFetchSnapshotShape(t *testing.T) {
	p := NewMockProvider(rand.New(rand.NewSource(7)))
	snaps, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	for sym, snap := range snaps {
		if snap.Symbol != sym {
			t.Fatalf("key %s holds symbol %s", sym, snap.Symbol)
		}
		if snap.Price <= 0 {
			t.Fatalf("%s price = %v", sym, snap.Price)
		}
		if len(snap.History) != historyPoints {
			t.Fatalf("%s history length = %d, want %d", sym, len(snap.History), historyPoints)
		}
		for i, h := range snap.History {
			if h <= 0 {
				t.Fatalf("%s history[%d] = %v", sym, i, h)
			}
		}
		if snap.Volume < 1_000_000 {
			t.Fatalf("%s volume = %v", sym, snap.Volume)
		}
		if snap.DayHigh < snap.DayLow {
			t.Fatalf("%s high %v below low %v", sym, snap.DayHigh, snap.DayLow)
		}
	}
}

func TestMockFetchExchangesAndCurrency(t *testing.T) {
	p := NewMockProvider(rand.New(rand.NewSource(3)))
	snaps, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	cases := []struct {
		symbol   string
		exchange models.Exchange
		currency string
	}{
		{"THYAO", models.ExchangeBIST, "TRY"},
		{"AAPL", models.ExchangeNASDAQ, "USD"},
		{"ETH-USD", models.ExchangeCrypto, "USD"},
		{"TUR", models.ExchangeNASDAQ, "USD"},
	}
	for _, tc := range cases {
		snap := snaps[tc.symbol]
		if snap.Exchange != tc.exchange || snap.Currency != tc.currency {
			t.Fatalf("%s = %s/%s, want %s/%s", tc.symbol, snap.Exchange, snap.Currency, tc.exchange, tc.currency)
		}
	}
}

func TestMockFetchCancelledContext(t *testing.T) {
	p := NewMockProvider(rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Fetch(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestDecimalPlaces(t *testing.T) {
	cases := []struct {
		price float64
		want  int
	}{
		{0.0000095, 6},
		{0.58, 4},
		{1, 2},
		{285, 2},
	}
	for _, tc := range cases {
		if got := decimalPlaces(tc.price); got != tc.want {
			t.Fatalf("decimalPlaces(%v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}
