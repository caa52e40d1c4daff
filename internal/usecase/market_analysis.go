package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/analysis"
	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	"github.com/mmkaya-ui/borsa2/internal/screener"
	"github.com/mmkaya-ui/borsa2/pkg/logger"
	"github.com/mmkaya-ui/borsa2/pkg/metrics"
)

// ErrUnknownSymbol reports a symbol absent from the current universe.
var ErrUnknownSymbol = errors.New("unknown symbol")

// MarketAnalysisUseCase scores the instrument universe and serves per-stock
// deep dives.
type MarketAnalysisUseCase struct {
	store     *marketstore.Store
	scorer    *analysis.Scorer
	publisher service.AlertPublisher
	recorder  service.HistoryRecorder
	metrics   *metrics.Recorder
	log       *logger.Logger
}

func NewMarketAnalysisUseCase(
	store *marketstore.Store,
	scorer *analysis.Scorer,
	publisher service.AlertPublisher,
	recorder service.HistoryRecorder,
	rec *metrics.Recorder,
	log *logger.Logger,
) *MarketAnalysisUseCase {
	return &MarketAnalysisUseCase{
		store:     store,
		scorer:    scorer,
		publisher: publisher,
		recorder:  recorder,
		metrics:   rec,
		log:       log,
	}
}

// AnalyzeMarket scores every instrument, then filters and sorts per request.
// Instruments with malformed series are dropped from the result, not fatal.
func (uc *MarketAnalysisUseCase) AnalyzeMarket(ctx context.Context, req models.MarketAnalysisRequest) ([]models.ScreenedInstrument, error) {
	start := time.Now()
	snapshots := uc.store.Snapshot()
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("market data not ready")
	}

	items := make([]models.ScreenedInstrument, 0, len(snapshots))
	for _, snap := range snapshots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := uc.scorer.AnalyzeStock(snap.History, snap.Volume)
		if err != nil {
			uc.metrics.RecordError("malformed_series")
			uc.log.Warn("skipping instrument",
				logger.String("symbol", snap.Symbol),
				logger.Error(err),
			)
			continue
		}

		uc.metrics.RecordAnalysisRun(string(snap.Exchange))
		uc.metrics.RecordRiskScore(snap.Symbol, result.RiskScore)
		if result.RiskLevel == models.RiskHigh {
			if err := uc.publisher.PublishRiskEvent(ctx, snap.Symbol, result); err != nil {
				uc.log.Warn("risk event publish failed",
					logger.String("symbol", snap.Symbol),
					logger.Error(err),
				)
			}
		}

		items = append(items, models.ScreenedInstrument{
			InstrumentSnapshot: snap,
			Analysis:           result,
			Trend:              analysis.ClassifyTrend(snap.History, snap.Symbol),
		})
	}

	out := screener.FilterAndSort(items, req.Exchange, screener.SortKey(req.Sort), screener.Direction(req.Direction))
	uc.metrics.RecordLatency("market_analysis", time.Since(start).Seconds())
	return out, nil
}

// AnalyzeStock scores a single instrument and persists the outcome.
func (uc *MarketAnalysisUseCase) AnalyzeStock(ctx context.Context, symbol string) (models.ScreenedInstrument, error) {
	snap, ok := uc.store.Get(symbol)
	if !ok {
		return models.ScreenedInstrument{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	result, err := uc.scorer.AnalyzeStock(snap.History, snap.Volume)
	if err != nil {
		uc.metrics.RecordError("malformed_series")
		return models.ScreenedInstrument{}, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	uc.metrics.RecordAnalysisRun(string(snap.Exchange))
	uc.metrics.RecordRiskScore(symbol, result.RiskScore)
	if err := uc.recorder.RecordAnalysis(ctx, symbol, result); err != nil {
		uc.log.Warn("analysis history write failed",
			logger.String("symbol", symbol),
			logger.Error(err),
		)
	}

	return models.ScreenedInstrument{
		InstrumentSnapshot: snap,
		Analysis:           result,
		Trend:              analysis.ClassifyTrend(snap.History, snap.Symbol),
	}, nil
}
