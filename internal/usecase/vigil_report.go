package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	"github.com/mmkaya-ui/borsa2/internal/vigil"
	pkgcache "github.com/mmkaya-ui/borsa2/pkg/cache"
	"github.com/mmkaya-ui/borsa2/pkg/logger"
	"github.com/mmkaya-ui/borsa2/pkg/metrics"
)

const vigilCacheKey = "vigil:report"

// VigilReportUseCase aggregates macro proxies, social sentiment and the
// whale scan into one global market verdict. Reports are cached briefly;
// fresh=true bypasses the cache and refreshes the snapshot first.
type VigilReportUseCase struct {
	store     *marketstore.Store
	analyzer  *vigil.Analyzer
	social    service.SocialSignalProvider
	publisher service.AlertPublisher
	recorder  service.HistoryRecorder
	cache     pkgcache.Service
	cacheTTL  time.Duration
	refSymbol string
	metrics   *metrics.Recorder
	log       *logger.Logger
}

func NewVigilReportUseCase(
	store *marketstore.Store,
	analyzer *vigil.Analyzer,
	social service.SocialSignalProvider,
	publisher service.AlertPublisher,
	recorder service.HistoryRecorder,
	cache pkgcache.Service,
	cacheTTL time.Duration,
	refSymbol string,
	rec *metrics.Recorder,
	log *logger.Logger,
) *VigilReportUseCase {
	return &VigilReportUseCase{
		store:     store,
		analyzer:  analyzer,
		social:    social,
		publisher: publisher,
		recorder:  recorder,
		cache:     cache,
		cacheTTL:  cacheTTL,
		refSymbol: refSymbol,
		metrics:   rec,
		log:       log,
	}
}

// GetReport builds the global market report. The social provider can fail
// without failing the report; the snapshot source cannot.
func (uc *VigilReportUseCase) GetReport(ctx context.Context, fresh bool) (models.VigilReport, error) {
	if !fresh {
		var cached models.VigilReport
		if err := uc.cache.Get(ctx, vigilCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	start := time.Now()

	// The social fetch keys off the reference proxy's current day change.
	refChange := 0.0
	if snap, ok := uc.store.Get(uc.refSymbol); ok {
		refChange = snap.ChangePercent
	}

	var (
		wg         sync.WaitGroup
		socials    []models.SocialSignal
		socialErr  error
		refreshErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		socials, socialErr = uc.social.Signals(ctx, uc.refSymbol, refChange)
	}()

	if fresh {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refreshErr = uc.store.Refresh(ctx)
		}()
	}
	wg.Wait()

	if refreshErr != nil {
		return models.VigilReport{}, fmt.Errorf("refresh snapshot: %w", refreshErr)
	}
	if socialErr != nil {
		uc.metrics.RecordError("social_fetch")
		uc.log.Warn("social signals unavailable", logger.Error(socialErr))
		socials = nil
	}

	instruments := uc.store.Snapshot()
	if len(instruments) == 0 {
		return models.VigilReport{}, fmt.Errorf("market data not ready")
	}

	report := uc.analyzer.AnalyzeGlobalMarkets(instruments, socials)

	uc.metrics.RecordVigilDecision(string(report.Decision))
	for _, alert := range report.WhaleAlerts {
		uc.metrics.RecordWhaleAlert(string(alert.Type))
		if err := uc.publisher.PublishWhaleAlert(ctx, alert); err != nil {
			uc.log.Warn("whale alert publish failed",
				logger.String("symbol", alert.Symbol),
				logger.Error(err),
			)
		}
	}
	if err := uc.recorder.RecordVigil(ctx, report); err != nil {
		uc.log.Warn("vigil history write failed", logger.Error(err))
	}

	if err := uc.cache.Set(ctx, vigilCacheKey, report, uc.cacheTTL); err != nil {
		uc.log.Warn("vigil report cache write failed", logger.Error(err))
	}
	uc.metrics.RecordLatency("vigil_report", time.Since(start).Seconds())
	return report, nil
}
