package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mmkaya-ui/borsa2/internal/analysis"
	"github.com/mmkaya-ui/borsa2/internal/detective"
	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	svccache "github.com/mmkaya-ui/borsa2/internal/service/cache"
	"github.com/mmkaya-ui/borsa2/internal/usecase"
	"github.com/mmkaya-ui/borsa2/internal/vigil"
	pkgcache "github.com/mmkaya-ui/borsa2/pkg/cache"
	"github.com/mmkaya-ui/borsa2/pkg/logger"
	"github.com/mmkaya-ui/borsa2/pkg/metrics"
)

var (
	metricsOnce sync.Once
	testRec     *metrics.Recorder
)

func testMetrics() *metrics.Recorder {
	metricsOnce.Do(func() { testRec = metrics.New() })
	return testRec
}

type fixedProvider struct {
	snaps map[string]models.InstrumentSnapshot
}

func (p fixedProvider) Fetch(ctx context.Context) (map[string]models.InstrumentSnapshot, error) {
	out := make(map[string]models.InstrumentSnapshot, len(p.snaps))
	for k, v := range p.snaps {
		out[k] = v
	}
	return out, nil
}

type noSocial struct{}

func (noSocial) Signals(ctx context.Context, symbol string, priceChange float64) ([]models.SocialSignal, error) {
	return nil, nil
}

type nopPublisher struct{}

func (nopPublisher) PublishWhaleAlert(ctx context.Context, alert models.WhaleAlert) error { return nil }
func (nopPublisher) PublishRiskEvent(ctx context.Context, symbol string, result models.AnalysisResult) error {
	return nil
}
func (nopPublisher) Close() error { return nil }

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(ctx context.Context, symbol string, result models.AnalysisResult) error {
	return nil
}
func (nopRecorder) RecordVigil(ctx context.Context, report models.VigilReport) error { return nil }

type halfRand struct{}

func (halfRand) Float64() float64 { return 0.5 }

func flat(n int, level float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = level
	}
	return out
}

func newTestHandler(t *testing.T) *MarketEchoHandler {
	t.Helper()
	snaps := map[string]models.InstrumentSnapshot{
		"THYAO": {Symbol: "THYAO", Exchange: models.ExchangeBIST, Price: 285, Volume: 1e6, AvgVolume: 1e6, History: flat(5, 285)},
		"AAPL":  {Symbol: "AAPL", Exchange: models.ExchangeNASDAQ, Price: 175, Volume: 1e6, AvgVolume: 1e6, History: flat(5, 175)},
		"TUR":   {Symbol: "TUR", Price: 38, ChangePercent: 0.2, Volume: 1e6, AvgVolume: 1e6, History: flat(5, 38)},
	}
	store := marketstore.New(fixedProvider{snaps: snaps}, time.Minute, logger.Nop())
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	market := usecase.NewMarketAnalysisUseCase(
		store,
		analysis.NewScorer(analysis.DefaultScorerParams()),
		nopPublisher{},
		nopRecorder{},
		testMetrics(),
		logger.Nop(),
	)
	vig := usecase.NewVigilReportUseCase(
		store,
		vigil.NewAnalyzer(vigil.DefaultParams(), halfRand{}),
		noSocial{},
		nopPublisher{},
		nopRecorder{},
		pkgcache.NewMemoryCache(),
		time.Minute,
		"TUR",
		testMetrics(),
		logger.Nop(),
	)
	det := usecase.NewDetectiveScanUseCase(
		store,
		detective.New(detective.DefaultParams()),
		svccache.NewTTLCache(),
		testMetrics(),
	)
	return NewMarketEchoHandler(logger.Nop(), market, vig, det)
}

func doRequest(t *testing.T, h *MarketEchoHandler, target string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func envelopeStatus(t *testing.T, body map[string]json.RawMessage) int {
	t.Helper()
	var status int
	if err := json.Unmarshal(body["status"], &status); err != nil {
		t.Fatalf("status field: %v", err)
	}
	return status
}

func TestMarketAnalysisEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec, body := doRequest(t, h, "/api/market/analysis?exchange=BIST&sort=symbol&dir=asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d", rec.Code)
	}
	if got := envelopeStatus(t, body); got != http.StatusOK {
		t.Fatalf("envelope status = %d", got)
	}

	var data struct {
		Rows  []models.ScreenedInstrument `json:"rows"`
		Total int64                       `json:"total"`
	}
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data.Total != 1 || len(data.Rows) != 1 || data.Rows[0].Symbol != "THYAO" {
		t.Fatalf("data = %+v", data)
	}
}

func TestMarketAnalysisRejectsBadExchange(t *testing.T) {
	h := newTestHandler(t)
	_, body := doRequest(t, h, "/api/market/analysis?exchange=LSE")
	if got := envelopeStatus(t, body); got != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", got)
	}
}

func TestStockAnalysisEndpoint(t *testing.T) {
	h := newTestHandler(t)
	_, body := doRequest(t, h, "/api/stock/THYAO/analysis")
	if got := envelopeStatus(t, body); got != http.StatusOK {
		t.Fatalf("envelope status = %d", got)
	}
}

func TestStockAnalysisUnknownSymbol(t *testing.T) {
	h := newTestHandler(t)
	_, body := doRequest(t, h, "/api/stock/NOPE/analysis")
	if got := envelopeStatus(t, body); got != http.StatusNotFound {
		t.Fatalf("envelope status = %d, want 404", got)
	}
}

func TestVigilEndpoint(t *testing.T) {
	h := newTestHandler(t)
	_, body := doRequest(t, h, "/api/vigil")
	if got := envelopeStatus(t, body); got != http.StatusOK {
		t.Fatalf("envelope status = %d", got)
	}

	var report models.VigilReport
	if err := json.Unmarshal(body["data"], &report); err != nil {
		t.Fatalf("data: %v", err)
	}
	if report.Decision == "" {
		t.Fatalf("report = %+v", report)
	}
}

func TestDetectiveScanEndpoint(t *testing.T) {
	h := newTestHandler(t)
	_, body := doRequest(t, h, "/api/detective/scan?limit=2")
	if got := envelopeStatus(t, body); got != http.StatusOK {
		t.Fatalf("envelope status = %d", got)
	}
}

func TestDetectiveScanRateLimited(t *testing.T) {
	h := newTestHandler(t)
	limited := false
	for i := 0; i < scanBucketCapacity+2; i++ {
		_, body := doRequest(t, h, "/api/detective/scan")
		if envelopeStatus(t, body) == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatalf("burst was never rate limited")
	}
}

func TestDetectiveScanRejectsOversizedLimit(t *testing.T) {
	h := newTestHandler(t)
	_, body := doRequest(t, h, "/api/detective/scan?limit=999")
	if got := envelopeStatus(t, body); got != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", got)
	}
}
