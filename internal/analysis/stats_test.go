package analysis

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestValidateSeries(t *testing.T) {
	if err := ValidateSeries(nil); !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("empty series: got %v", err)
	}
	if err := ValidateSeries([]float64{10, math.NaN(), 12}); !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("NaN series: got %v", err)
	}
	if err := ValidateSeries([]float64{10, math.Inf(1)}); !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("inf series: got %v", err)
	}
	if err := ValidateSeries([]float64{10, -1, 12}); !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("negative price: got %v", err)
	}
	if err := ValidateSeries([]float64{10, 11, 12}); err != nil {
		t.Fatalf("valid series: got %v", err)
	}
}

func TestRSIShortSeriesIsNeutral(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14}
	if got := RSI(prices, 14); got != 50 {
		t.Fatalf("short series RSI = %v, want 50", got)
	}
}

func TestRSINoLossesIsMax(t *testing.T) {
	prices := make([]float64, 15)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	if got := RSI(prices, 14); got != 100 {
		t.Fatalf("rising series RSI = %v, want 100", got)
	}
}

func TestRSIBalancedMoves(t *testing.T) {
	// One gain of 1, one loss of 1: RS=1, RSI=50.
	if got := RSI([]float64{10, 11, 10}, 2); !almostEqual(got, 50) {
		t.Fatalf("RSI = %v, want 50", got)
	}
}

func TestRSIKnownValue(t *testing.T) {
	// Gains 2, losses 1 over the last two deltas: RS=2, RSI=100-100/3.
	got := RSI([]float64{10, 12, 11}, 2)
	want := 100 - 100.0/3
	if !almostEqual(got, want) {
		t.Fatalf("RSI = %v, want %v", got, want)
	}
}

func TestVolatilityPopulationStdDev(t *testing.T) {
	prices := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Volatility(prices); !almostEqual(got, 2) {
		t.Fatalf("volatility = %v, want 2", got)
	}
}

func TestVolatilityShortSeries(t *testing.T) {
	if got := Volatility([]float64{42}); got != 0 {
		t.Fatalf("single point volatility = %v, want 0", got)
	}
}

func TestSMA(t *testing.T) {
	got, ok := SMA([]float64{1, 2, 3, 4}, 2)
	if !ok || !almostEqual(got, 3.5) {
		t.Fatalf("SMA = %v ok=%v, want 3.5 true", got, ok)
	}
	if _, ok := SMA([]float64{1, 2}, 3); ok {
		t.Fatalf("expected ok=false for short series")
	}
}

func TestBollingerBandsFlatSeries(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100
	}
	bb, ok := BollingerBands(prices, 20)
	if !ok {
		t.Fatalf("expected ok")
	}
	if bb.Upper != 100 || bb.Middle != 100 || bb.Lower != 100 {
		t.Fatalf("flat series bands = %+v, want all 100", bb)
	}
}

func TestBollingerBandsKnownValue(t *testing.T) {
	bb, ok := BollingerBands([]float64{1, 2, 3, 4}, 4)
	if !ok {
		t.Fatalf("expected ok")
	}
	std := math.Sqrt(1.25)
	if !almostEqual(bb.Middle, 2.5) || !almostEqual(bb.Upper, 2.5+2*std) || !almostEqual(bb.Lower, 2.5-2*std) {
		t.Fatalf("bands = %+v", bb)
	}
}

func TestBollingerBandsShortSeries(t *testing.T) {
	if _, ok := BollingerBands([]float64{1, 2, 3}, 20); ok {
		t.Fatalf("expected ok=false")
	}
}
