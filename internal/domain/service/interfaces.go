package service

import (
	"context"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

// SnapshotProvider yields the current instrument universe keyed by symbol.
type SnapshotProvider interface {
	Fetch(ctx context.Context) (map[string]models.InstrumentSnapshot, error)
}

// SocialSignalProvider samples sentiment signals for a symbol given its
// recent price change. A failing provider degrades to "no social signal";
// callers must not fail the whole aggregation on error.
type SocialSignalProvider interface {
	Signals(ctx context.Context, symbol string, priceChange float64) ([]models.SocialSignal, error)
}

// AlertPublisher pushes whale alerts and high-risk analysis events to an
// external bus. Best-effort: publish failures are logged, not propagated.
type AlertPublisher interface {
	PublishWhaleAlert(ctx context.Context, alert models.WhaleAlert) error
	PublishRiskEvent(ctx context.Context, symbol string, result models.AnalysisResult) error
	Close() error
}

// HistoryRecorder persists analysis outcomes for later inspection. The
// scoring core never depends on it; it is an optional shell-side sink.
type HistoryRecorder interface {
	RecordAnalysis(ctx context.Context, symbol string, result models.AnalysisResult) error
	RecordVigil(ctx context.Context, report models.VigilReport) error
}

// RandSource supplies uniform draws in [0,1). Injected wherever simulated
// randomness is needed so tests can reproduce exact outputs.
type RandSource interface {
	Float64() float64
}
