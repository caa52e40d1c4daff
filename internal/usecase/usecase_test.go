package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	"github.com/mmkaya-ui/borsa2/pkg/logger"
	"github.com/mmkaya-ui/borsa2/pkg/metrics"
)

// The recorder registers on the default prometheus registry, so the test
// binary shares a single instance.
var (
	metricsOnce sync.Once
	testRec     *metrics.Recorder
)

func testMetrics() *metrics.Recorder {
	metricsOnce.Do(func() { testRec = metrics.New() })
	return testRec
}

type stubProvider struct {
	mu    sync.Mutex
	snaps map[string]models.InstrumentSnapshot
	err   error
	calls int
}

func (p *stubProvider) Fetch(ctx context.Context) (map[string]models.InstrumentSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
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

func readyStore(snaps map[string]models.InstrumentSnapshot) *marketstore.Store {
	return readyStoreWith(&stubProvider{snaps: snaps})
}

func readyStoreWith(p *stubProvider) *marketstore.Store {
	s := marketstore.New(p, time.Minute, logger.Nop())
	if err := s.Refresh(context.Background()); err != nil {
		panic(err)
	}
	return s
}

type capturingPublisher struct {
	mu     sync.Mutex
	whale  []models.WhaleAlert
	risk   []string
	pubErr error
}

func (p *capturingPublisher) PublishWhaleAlert(ctx context.Context, alert models.WhaleAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.whale = append(p.whale, alert)
	return p.pubErr
}

func (p *capturingPublisher) PublishRiskEvent(ctx context.Context, symbol string, result models.AnalysisResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.risk = append(p.risk, symbol)
	return p.pubErr
}

func (p *capturingPublisher) Close() error { return nil }

type capturingRecorder struct {
	analyses []string
	vigils   int
}

func (r *capturingRecorder) RecordAnalysis(ctx context.Context, symbol string, result models.AnalysisResult) error {
	r.analyses = append(r.analyses, symbol)
	return nil
}

func (r *capturingRecorder) RecordVigil(ctx context.Context, report models.VigilReport) error {
	r.vigils++
	return nil
}

func flatHistory(n int, level float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = level
	}
	return out
}
