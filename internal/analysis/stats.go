package analysis

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedSeries marks input that is genuinely invalid (empty, NaN,
// infinite or non-positive prices). Short-but-valid series are never an
// error; each statistic falls back to its documented neutral value instead.
var ErrMalformedSeries = errors.New("malformed price series")

// ValidateSeries fails fast on input that would otherwise poison every
// downstream statistic with NaN.
func ValidateSeries(prices []float64) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: empty", ErrMalformedSeries)
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: non-finite value at index %d", ErrMalformedSeries, i)
		}
		if p <= 0 {
			return fmt.Errorf("%w: non-positive price %v at index %d", ErrMalformedSeries, p, i)
		}
	}
	return nil
}

// RSI computes the relative strength index over the most recent `period`
// deltas using plain (non-Wilder) averaging of gains and losses.
// Returns 50 when fewer than period+1 points are available and 100 when
// cumulative losses are zero. Result is always in [0,100].
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50
	}

	var gains, losses float64
	for i := len(prices) - period; i < len(prices); i++ {
		diff := prices[i] - prices[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}

	if losses == 0 {
		return 100
	}

	rs := (gains / float64(period)) / (losses / float64(period))
	return 100 - 100/(1+rs)
}

// Volatility is the population standard deviation of the raw price levels
// over the whole series. Level-based on purpose: the score thresholds are
// calibrated against absolute price dispersion, not returns. Returns 0 for
// fewer than two points.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	n := float64(len(prices))
	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / n

	var variance float64
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	return math.Sqrt(variance / n)
}

// SMA returns the arithmetic mean of the last `period` points. The second
// return is false when the series is too short; that is a valid
// callers-must-check outcome, not an error.
func SMA(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	var sum float64
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), true
}

// Bands holds Bollinger band levels around a moving-average middle.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands computes SMA(period) ± 2 population standard deviations
// of the last `period` points. ok is false when the series is too short.
func BollingerBands(prices []float64, period int) (Bands, bool) {
	mid, ok := SMA(prices, period)
	if !ok {
		return Bands{}, false
	}

	var variance float64
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - mid
		variance += d * d
	}
	std := math.Sqrt(variance / float64(period))

	return Bands{
		Upper:  mid + 2*std,
		Middle: mid,
		Lower:  mid - 2*std,
	}, true
}
