package analysis

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

func TestAnalyzeStockFlatShortSeries(t *testing.T) {
	s := NewScorer(DefaultScorerParams())
	res, err := s.AnalyzeStock([]float64{50, 50, 50, 50, 50}, 1_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 20 {
		t.Fatalf("score = %d, want base 20", res.RiskScore)
	}
	if res.RiskLevel != models.RiskLow {
		t.Fatalf("level = %s, want LOW", res.RiskLevel)
	}
	if len(res.Hints) != 0 {
		t.Fatalf("hints = %v, want none", res.Hints)
	}
	if res.RSI != 50 {
		t.Fatalf("RSI = %v, want neutral 50", res.RSI)
	}
}

func TestAnalyzeStockPumpScenario(t *testing.T) {
	// Twenty flat candles then a 30% spike. Trips the overbought, volatility,
	// band-breakout and pump rules and clamps at 100.
	prices := make([]float64, 21)
	for i := range prices {
		prices[i] = 100
	}
	prices[20] = 130

	s := NewScorer(DefaultScorerParams())
	res, err := s.AnalyzeStock(prices, 5_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 100 {
		t.Fatalf("score = %d, want clamped 100", res.RiskScore)
	}
	if res.RiskLevel != models.RiskHigh {
		t.Fatalf("level = %s, want HIGH", res.RiskLevel)
	}
	want := []string{models.HintRSIHigh, models.HintVolatilityExtreme, models.HintPumpRisk}
	if !reflect.DeepEqual(res.Hints, want) {
		t.Fatalf("hints = %v, want %v", res.Hints, want)
	}
}

func TestAnalyzeStockRapidClimb(t *testing.T) {
	// +20% over five candles: the pump and extreme-move rules fire, the
	// others lack the history to.
	res, err := NewScorer(DefaultScorerParams()).AnalyzeStock([]float64{100, 102, 104, 106, 108, 130}, 500_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 75 {
		t.Fatalf("score = %d, want 75", res.RiskScore)
	}
	if res.RiskLevel != models.RiskMedium {
		t.Fatalf("level = %s, want MEDIUM", res.RiskLevel)
	}
	if !reflect.DeepEqual(res.Hints, []string{models.HintVolatilityExtreme, models.HintPumpRisk}) {
		t.Fatalf("hints = %v", res.Hints)
	}
}

func TestAnalyzeStockOversold(t *testing.T) {
	// Sixteen strictly falling candles: RSI 0, but the oversold rule only
	// tags, it never adds points.
	prices := make([]float64, 16)
	for i := range prices {
		prices[i] = 115 - float64(i)
	}

	s := NewScorer(DefaultScorerParams())
	res, err := s.AnalyzeStock(prices, 1_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 20 {
		t.Fatalf("score = %d, want base 20", res.RiskScore)
	}
	if res.RiskLevel != models.RiskLow {
		t.Fatalf("level = %s, want LOW", res.RiskLevel)
	}
	if !reflect.DeepEqual(res.Hints, []string{models.HintRSILow}) {
		t.Fatalf("hints = %v, want [rsi_low]", res.Hints)
	}
}

func TestAnalyzeStockMediumBand(t *testing.T) {
	// Rising 15-point series: RSI 100 adds the critical 30 on top of the
	// base 20. 50 sits in the MEDIUM band.
	prices := make([]float64, 15)
	for i := range prices {
		prices[i] = 100 + float64(i)*0.1
	}

	s := NewScorer(DefaultScorerParams())
	res, err := s.AnalyzeStock(prices, 1_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 50 {
		t.Fatalf("score = %d, want 50", res.RiskScore)
	}
	if res.RiskLevel != models.RiskMedium {
		t.Fatalf("level = %s, want MEDIUM", res.RiskLevel)
	}
}

func TestAnalyzeStockMalformedInput(t *testing.T) {
	s := NewScorer(DefaultScorerParams())
	cases := []struct {
		name   string
		prices []float64
		volume float64
	}{
		{"empty", nil, 1000},
		{"nan price", []float64{10, math.NaN()}, 1000},
		{"negative price", []float64{10, -5}, 1000},
		{"negative volume", []float64{10, 11}, -1},
		{"nan volume", []float64{10, 11}, math.NaN()},
	}
	for _, tc := range cases {
		if _, err := s.AnalyzeStock(tc.prices, tc.volume); !errors.Is(err, ErrMalformedSeries) {
			t.Fatalf("%s: got %v, want ErrMalformedSeries", tc.name, err)
		}
	}
}

func TestStepMoves(t *testing.T) {
	avg, max := stepMoves([]float64{100, 110, 99})
	if !almostEqual(avg, (0.1+0.1)/2) {
		t.Fatalf("avg = %v", avg)
	}
	if !almostEqual(max, 0.1) {
		t.Fatalf("max = %v", max)
	}
}
