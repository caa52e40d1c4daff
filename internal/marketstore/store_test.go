package marketstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/pkg/logger"
)

type stubProvider struct {
	snaps map[string]models.InstrumentSnapshot
	err   error
	calls int
}

func (p *stubProvider) Fetch(ctx context.Context) (map[string]models.InstrumentSnapshot, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make(map[string]models.InstrumentSnapshot, len(p.snaps))
	for k, v := range p.snaps {
		out[k] = v
	}
	return out, nil
}

func newTestStore(p *stubProvider) *Store {
	return New(p, time.Minute, logger.Nop())
}

func TestRefreshAndGet(t *testing.T) {
	p := &stubProvider{snaps: map[string]models.InstrumentSnapshot{
		"THYAO": {Symbol: "THYAO", Price: 285},
	}}
	s := newTestStore(p)

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	snap, ok := s.Get("THYAO")
	if !ok || snap.Price != 285 {
		t.Fatalf("get = %+v ok=%v", snap, ok)
	}
	if _, ok := s.Get("GARAN"); ok {
		t.Fatalf("unexpected hit for missing symbol")
	}
}

func TestRefreshFailureKeepsOldSnapshot(t *testing.T) {
	p := &stubProvider{snaps: map[string]models.InstrumentSnapshot{
		"THYAO": {Symbol: "THYAO", Price: 285},
	}}
	s := newTestStore(p)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	p.err = errors.New("feed down")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := s.Get("THYAO"); !ok {
		t.Fatalf("previous snapshot lost")
	}
}

func TestSnapshotReturnsCopy(t *testing.T) {
	p := &stubProvider{snaps: map[string]models.InstrumentSnapshot{
		"THYAO": {Symbol: "THYAO", Price: 285},
	}}
	s := newTestStore(p)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := s.Snapshot()
	delete(snap, "THYAO")
	if _, ok := s.Get("THYAO"); !ok {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	p := &stubProvider{snaps: map[string]models.InstrumentSnapshot{}}
	s := newTestStore(p)

	fired := 0
	unsub := s.Subscribe(func() { fired++ })

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	unsub()
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fired != 1 {
		t.Fatalf("fired after unsubscribe = %d, want 1", fired)
	}
}

func TestSetHoldingZeroQuantityRemoves(t *testing.T) {
	s := newTestStore(&stubProvider{})
	s.SetHolding(models.Holding{Symbol: "THYAO", Quantity: 10, CostBasis: 250})
	if got := s.Holdings(); len(got) != 1 {
		t.Fatalf("holdings = %v", got)
	}

	s.SetHolding(models.Holding{Symbol: "THYAO", Quantity: 0})
	if got := s.Holdings(); len(got) != 0 {
		t.Fatalf("holdings after removal = %v", got)
	}
}

func TestValuation(t *testing.T) {
	p := &stubProvider{snaps: map[string]models.InstrumentSnapshot{
		"THYAO": {Symbol: "THYAO", Price: 300},
	}}
	s := newTestStore(p)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	s.SetHolding(models.Holding{Symbol: "THYAO", Quantity: 10, CostBasis: 250})
	// No live price: carried at cost.
	s.SetHolding(models.Holding{Symbol: "GARAN", Quantity: 100, CostBasis: 70})

	v := s.Valuation()
	if v.Cost != 2500+7000 {
		t.Fatalf("cost = %v", v.Cost)
	}
	if v.MarketValue != 3000+7000 {
		t.Fatalf("market value = %v", v.MarketValue)
	}
	if v.PnL != 500 {
		t.Fatalf("pnl = %v", v.PnL)
	}
	wantPct := 500.0 / 9500 * 100
	if v.PnLPercent != wantPct {
		t.Fatalf("pnl%% = %v, want %v", v.PnLPercent, wantPct)
	}
}

func TestValuationEmpty(t *testing.T) {
	s := newTestStore(&stubProvider{})
	v := s.Valuation()
	if v.Cost != 0 || v.MarketValue != 0 || v.PnL != 0 || v.PnLPercent != 0 {
		t.Fatalf("empty valuation = %+v", v)
	}
}
