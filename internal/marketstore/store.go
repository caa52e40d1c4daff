// Package marketstore holds the live instrument universe behind an
// explicit, passed-in state object. Callers pull consistent snapshots or
// subscribe for push notification after each refresh; the store owns the
// refresh ticker, not the consumers.
package marketstore

import (
	"context"
	"sync"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
	"github.com/mmkaya-ui/borsa2/pkg/logger"
)

// Store is safe for concurrent use. Snapshots handed out are copies; the
// core's purity guarantees depend on that.
type Store struct {
	provider service.SnapshotProvider
	interval time.Duration
	log      *logger.Logger

	mu        sync.RWMutex
	snapshots map[string]models.InstrumentSnapshot
	holdings  map[string]models.Holding
	subs      map[int]func()
	nextSub   int
}

func New(provider service.SnapshotProvider, interval time.Duration, log *logger.Logger) *Store {
	return &Store{
		provider:  provider,
		interval:  interval,
		log:       log,
		snapshots: make(map[string]models.InstrumentSnapshot),
		holdings:  make(map[string]models.Holding),
		subs:      make(map[int]func()),
	}
}

// Refresh pulls a fresh universe from the provider and notifies
// subscribers. A provider failure leaves the previous snapshot in place.
func (s *Store) Refresh(ctx context.Context) error {
	snaps, err := s.provider.Fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshots = snaps
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (s *Store) Run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("initial market refresh failed", logger.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Warn("market refresh failed", logger.Error(err))
			}
		}
	}
}

// Snapshot returns a copy of the current universe keyed by symbol.
func (s *Store) Snapshot() map[string]models.InstrumentSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.InstrumentSnapshot, len(s.snapshots))
	for sym, snap := range s.snapshots {
		out[sym] = snap
	}
	return out
}

// Get returns one instrument by symbol.
func (s *Store) Get(symbol string) (models.InstrumentSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[symbol]
	return snap, ok
}

// Subscribe registers a callback fired after every successful refresh and
// returns its unsubscribe function. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetHolding upserts a position. Zero quantity removes it.
func (s *Store) SetHolding(h models.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.Quantity == 0 {
		delete(s.holdings, h.Symbol)
		return
	}
	s.holdings[h.Symbol] = h
}

// Holdings returns a copy of the current positions.
func (s *Store) Holdings() []models.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Holding, 0, len(s.holdings))
	for _, h := range s.holdings {
		out = append(out, h)
	}
	return out
}

// Valuation marks all holdings to the current snapshot prices. Positions
// without a live price are carried at cost.
func (s *Store) Valuation() models.PortfolioValuation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v models.PortfolioValuation
	for sym, h := range s.holdings {
		cost := h.Quantity * h.CostBasis
		v.Cost += cost
		if snap, ok := s.snapshots[sym]; ok {
			v.MarketValue += h.Quantity * snap.Price
		} else {
			v.MarketValue += cost
		}
	}
	v.PnL = v.MarketValue - v.Cost
	if v.Cost > 0 {
		v.PnLPercent = v.PnL / v.Cost * 100
	}
	return v
}
