package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/detective"
	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	svccache "github.com/mmkaya-ui/borsa2/internal/service/cache"
	"github.com/mmkaya-ui/borsa2/pkg/metrics"
)

const (
	sweepCacheKey = "detective:sweep"
	sweepCacheTTL = 5 * time.Second
)

// DetectiveScanUseCase runs the forensic sweep over the current universe.
// The full sweep is cached briefly so bursts of requests with different
// limits share one pass.
type DetectiveScanUseCase struct {
	store   *marketstore.Store
	det     *detective.Detective
	cache   *svccache.TTLCache
	metrics *metrics.Recorder
}

func NewDetectiveScanUseCase(store *marketstore.Store, det *detective.Detective, cache *svccache.TTLCache, rec *metrics.Recorder) *DetectiveScanUseCase {
	return &DetectiveScanUseCase{store: store, det: det, cache: cache, metrics: rec}
}

// Scan returns the top suspect instruments, highest score first.
func (uc *DetectiveScanUseCase) Scan(ctx context.Context, limit int) ([]models.ForensicReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reports []models.ForensicReport
	if v, ok := uc.cache.Get(sweepCacheKey); ok {
		reports, _ = v.([]models.ForensicReport)
	}

	if reports == nil {
		start := time.Now()
		snapshots := uc.store.Snapshot()
		if len(snapshots) == 0 {
			return nil, fmt.Errorf("market data not ready")
		}
		reports = uc.det.Sweep(snapshots)
		uc.cache.Set(sweepCacheKey, reports, sweepCacheTTL)
		uc.metrics.RecordLatency("detective_scan", time.Since(start).Seconds())
	}

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}
