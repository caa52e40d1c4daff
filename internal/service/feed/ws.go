package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	applogger "github.com/mmkaya-ui/borsa2/pkg/logger"

	"github.com/gorilla/websocket"
)

const maxHistoryPoints = 64

// WSProvider implements service.SnapshotProvider on top of a live trade
// websocket. Trades accumulate into per-symbol quotes; Fetch materializes the
// current table as snapshots.
type WSProvider struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	log            *applogger.Logger

	mu     sync.RWMutex
	conn   *websocket.Conn
	quotes map[string]*liveQuote
}

type liveQuote struct {
	firstPrice float64
	price      float64
	high       float64
	low        float64
	volume     float64
	history    []float64
}

func NewWSProvider(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration, log *applogger.Logger) *WSProvider {
	return &WSProvider{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		log:            log,
		quotes:         make(map[string]*liveQuote),
	}
}

type wsTrade struct {
	S string  `json:"s"`
	P float64 `json:"p"`
	V float64 `json:"v"`
	T int64   `json:"t"` // ms
}

type wsMessage struct {
	Type string    `json:"type"`
	Data []wsTrade `json:"data"`
}

// Run streams trades until ctx is cancelled, reconnecting on errors.
func (p *WSProvider) Run(ctx context.Context) {
	for {
		if err := p.connect(ctx); err != nil {
			p.log.Error("feed connect failed", applogger.Error(err))
		} else {
			p.readLoop(ctx)
		}
		select {
		case <-ctx.Done():
			p.close()
			return
		case <-time.After(p.reconnectDelay):
		}
	}
}

func (p *WSProvider) connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", p.websocketURL, p.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("feed connect: %w", err)
	}

	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()

	for _, s := range p.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": s}
		if err := conn.WriteJSON(msg); err != nil {
			p.close()
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
	}
	p.log.Info("feed connected", applogger.Int("symbols", len(p.symbols)))
	return nil
}

func (p *WSProvider) readLoop(ctx context.Context) {
	pingCtx, cancelPing := context.WithCancel(ctx)
	defer cancelPing()

	go func() {
		ticker := time.NewTicker(p.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-ticker.C:
				p.mu.RLock()
				conn := p.conn
				p.mu.RUnlock()
				if conn != nil {
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		p.mu.RLock()
		conn := p.conn
		p.mu.RUnlock()
		if conn == nil {
			return
		}
		_, b, err := conn.ReadMessage()
		if err != nil {
			p.log.Warn("feed read failed", applogger.Error(err))
			p.close()
			return
		}
		var m wsMessage
		if err := json.Unmarshal(b, &m); err != nil {
			// ignore non-trade frames
			continue
		}
		if m.Type != "trade" {
			continue
		}
		p.apply(m.Data)
	}
}

func (p *WSProvider) apply(trades []wsTrade) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range trades {
		q, ok := p.quotes[t.S]
		if !ok {
			q = &liveQuote{firstPrice: t.P, high: t.P, low: t.P}
			p.quotes[t.S] = q
		}
		q.price = t.P
		if t.P > q.high {
			q.high = t.P
		}
		if t.P < q.low {
			q.low = t.P
		}
		q.volume += t.V
		q.history = append(q.history, t.P)
		if len(q.history) > maxHistoryPoints {
			q.history = q.history[len(q.history)-maxHistoryPoints:]
		}
	}
}

// Fetch returns snapshots for every symbol that has traded so far.
func (p *WSProvider) Fetch(ctx context.Context) (map[string]models.InstrumentSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.quotes) == 0 {
		return nil, fmt.Errorf("feed: no quotes received yet")
	}

	out := make(map[string]models.InstrumentSnapshot, len(p.quotes))
	for sym, q := range p.quotes {
		change := q.price - q.firstPrice
		pct := 0.0
		if q.firstPrice != 0 {
			pct = change / q.firstPrice * 100
		}
		history := make([]float64, len(q.history))
		copy(history, q.history)
		out[sym] = models.InstrumentSnapshot{
			Symbol:        sym,
			Name:          sym,
			Price:         q.price,
			Change:        change,
			ChangePercent: pct,
			Volume:        q.volume,
			AvgVolume:     q.volume,
			Exchange:      models.ExchangeNASDAQ,
			Currency:      "USD",
			History:       history,
			Open:          q.firstPrice,
			PrevClose:     q.firstPrice,
			DayHigh:       q.high,
			DayLow:        q.low,
		}
	}
	return out, nil
}

func (p *WSProvider) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
