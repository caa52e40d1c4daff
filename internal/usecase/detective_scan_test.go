package usecase

import (
	"context"
	"testing"

	"github.com/mmkaya-ui/borsa2/internal/detective"
	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	svccache "github.com/mmkaya-ui/borsa2/internal/service/cache"
)

func newDetectiveUseCase(snaps map[string]models.InstrumentSnapshot) *DetectiveScanUseCase {
	return NewDetectiveScanUseCase(
		readyStore(snaps),
		detective.New(detective.DefaultParams()),
		svccache.NewTTLCache(),
		testMetrics(),
	)
}

func TestScanOrdersAndLimits(t *testing.T) {
	snaps := map[string]models.InstrumentSnapshot{
		// Ceiling move plus missing P/E: 55 points.
		"HEKTS": {Symbol: "HEKTS", Price: 16, ChangePercent: 9.5, Volume: 1, AvgVolume: 1},
		"AKBNK": {Symbol: "AKBNK", Price: 45, ChangePercent: 0.5, Volume: 1, AvgVolume: 1},
		"GARAN": {Symbol: "GARAN", Price: 78, ChangePercent: 0.5, Volume: 1, AvgVolume: 1},
	}
	uc := newDetectiveUseCase(snaps)

	reports, err := uc.Scan(context.Background(), 2)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Symbol != "HEKTS" || reports[0].RiskScore != 55 {
		t.Fatalf("top = %+v", reports[0])
	}
	if reports[1].Symbol != "AKBNK" {
		t.Fatalf("second = %+v", reports[1])
	}
}

func TestScanZeroLimitReturnsAll(t *testing.T) {
	snaps := map[string]models.InstrumentSnapshot{
		"AKBNK": {Symbol: "AKBNK", Price: 45, Volume: 1, AvgVolume: 1},
		"GARAN": {Symbol: "GARAN", Price: 78, Volume: 1, AvgVolume: 1},
	}
	uc := newDetectiveUseCase(snaps)

	reports, err := uc.Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want all", len(reports))
	}
}

func TestScanSharesCachedSweep(t *testing.T) {
	snaps := map[string]models.InstrumentSnapshot{
		"AKBNK": {Symbol: "AKBNK", Price: 45, Volume: 1, AvgVolume: 1},
		"GARAN": {Symbol: "GARAN", Price: 78, Volume: 1, AvgVolume: 1},
	}
	uc := newDetectiveUseCase(snaps)

	first, err := uc.Scan(context.Background(), 1)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first = %v", first)
	}

	// A wider limit straight after still sees the full cached sweep.
	second, err := uc.Scan(context.Background(), 10)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("second = %v", second)
	}
}

func TestScanEmptyStore(t *testing.T) {
	uc := newDetectiveUseCase(map[string]models.InstrumentSnapshot{})
	if _, err := uc.Scan(context.Background(), 5); err == nil {
		t.Fatalf("expected not-ready error")
	}
}
