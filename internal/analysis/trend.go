package analysis

import (
	"math"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

const (
	trendSMAPeriod    = 50
	confidenceBase    = 70
	confidenceSpread  = 20
	confidenceBonus   = 10
	confidenceCeiling = 99
	confidenceMinSize = 2
)

// hashSeed reduces a symbol to a stable non-negative integer using 31-shift
// hashing over its UTF-16 code units, wrapping at 32 bits. Stability across
// runs is the whole point: it keeps confidence values from flickering.
func hashSeed(s string) int {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

// ClassifyTrend labels a series Bullish when the last point is above the
// first, Bearish otherwise. A two-point comparison, not a regression; a
// deliberate simplicity-over-robustness trade the callers accept.
//
// Confidence is deterministic: a base in [70,90) derived from the symbol
// hash (or the last price when no symbol is given), plus 10 when the trend
// direction agrees with the price's side of the 50-period SMA, capped at 99.
func ClassifyTrend(prices []float64, symbol string) models.TrendResult {
	if len(prices) < confidenceMinSize {
		return models.TrendResult{Trend: models.TrendBullish, Confidence: 0}
	}

	last := prices[len(prices)-1]
	trend := models.TrendBearish
	if last > prices[0] {
		trend = models.TrendBullish
	}

	bonus := 0
	if sma, ok := SMA(prices, trendSMAPeriod); ok {
		if trend == models.TrendBullish && last > sma {
			bonus = confidenceBonus
		}
		if trend == models.TrendBearish && last < sma {
			bonus = confidenceBonus
		}
	}

	seed := 0
	if symbol != "" {
		seed = hashSeed(symbol)
	} else {
		seed = int(math.Floor(last * 100))
	}

	confidence := seed%confidenceSpread + confidenceBase + bonus
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	return models.TrendResult{Trend: trend, Confidence: confidence}
}
