package analysis

import (
	"math"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

// ScorerParams exposes every scoring threshold as named configuration.
// Defaults reproduce the canonical parameter set; see DESIGN.md for why
// this variant was chosen over the earlier base-0 revisions.
type ScorerParams struct {
	BaseScore int

	RSIPeriod        int
	RSICritical      float64 // above: +CriticalPoints, rsi_high
	RSIOverbought    float64 // above: +OverboughtPoints, rsi_high
	RSIOversold      float64 // below: rsi_low, no points
	CriticalPoints   int
	OverboughtPoints int

	AvgMoveThreshold float64 // mean |step| as fraction
	MaxMoveThreshold float64 // max |step| as fraction
	VolatilityPoints int

	BollingerPeriod    int
	BandBreakoutMargin float64 // last > upper*margin
	BreakoutPoints     int

	PumpWindow int     // candles back for the pump check
	PumpGain   float64 // last > ref*(1+gain)
	PumpPoints int

	MediumCut int // score above: MEDIUM
	HighCut   int // score above: HIGH
}

// DefaultScorerParams returns the canonical thresholds.
func DefaultScorerParams() ScorerParams {
	return ScorerParams{
		BaseScore:          20,
		RSIPeriod:          14,
		RSICritical:        85,
		RSIOverbought:      70,
		RSIOversold:        25,
		CriticalPoints:     30,
		OverboughtPoints:   15,
		AvgMoveThreshold:   0.03,
		MaxMoveThreshold:   0.07,
		VolatilityPoints:   30,
		BollingerPeriod:    20,
		BandBreakoutMargin: 1.01,
		BreakoutPoints:     25,
		PumpWindow:         5,
		PumpGain:           0.20,
		PumpPoints:         25,
		MediumCut:          40,
		HighCut:            75,
	}
}

// Scorer is the additive heuristic risk engine. All methods are pure; a
// Scorer may be shared across goroutines freely.
type Scorer struct {
	p ScorerParams
}

func NewScorer(p ScorerParams) *Scorer {
	return &Scorer{p: p}
}

// AnalyzeStock scores a price series plus a volume figure into a bounded
// risk score, a categorical level and hint tags. Rule evaluation order is
// externally visible: callers display the first hint as the summary.
//
// Short series never fail; each sub-statistic falls back to its neutral
// value so partial scoring on thin histories works. Only genuinely
// malformed input returns ErrMalformedSeries.
func (s *Scorer) AnalyzeStock(prices []float64, volume float64) (models.AnalysisResult, error) {
	if err := ValidateSeries(prices); err != nil {
		return models.AnalysisResult{}, err
	}
	if math.IsNaN(volume) || math.IsInf(volume, 0) || volume < 0 {
		return models.AnalysisResult{}, ErrMalformedSeries
	}

	rsi := RSI(prices, s.p.RSIPeriod)
	vol := Volatility(prices)

	score := s.p.BaseScore
	var hints []string
	addHint := func(tag string) {
		for _, h := range hints {
			if h == tag {
				return
			}
		}
		hints = append(hints, tag)
	}

	switch {
	case rsi > s.p.RSICritical:
		score += s.p.CriticalPoints
		addHint(models.HintRSIHigh)
	case rsi > s.p.RSIOverbought:
		score += s.p.OverboughtPoints
		addHint(models.HintRSIHigh)
	case rsi < s.p.RSIOversold:
		addHint(models.HintRSILow)
	}

	if avgMove, maxMove := stepMoves(prices); avgMove > s.p.AvgMoveThreshold || maxMove > s.p.MaxMoveThreshold {
		score += s.p.VolatilityPoints
		addHint(models.HintVolatilityExtreme)
	}

	last := prices[len(prices)-1]
	if bb, ok := BollingerBands(prices, s.p.BollingerPeriod); ok && last > bb.Upper*s.p.BandBreakoutMargin {
		score += s.p.BreakoutPoints
		addHint(models.HintPumpRisk)
	}

	if len(prices) > s.p.PumpWindow {
		ref := prices[len(prices)-s.p.PumpWindow]
		if last > ref*(1+s.p.PumpGain) {
			score += s.p.PumpPoints
			addHint(models.HintPumpRisk)
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := models.RiskLow
	switch {
	case score > s.p.HighCut:
		level = models.RiskHigh
	case score > s.p.MediumCut:
		level = models.RiskMedium
	}

	return models.AnalysisResult{
		RiskScore:  score,
		RiskLevel:  level,
		Hints:      hints,
		RSI:        rsi,
		Volatility: vol,
	}, nil
}

// stepMoves returns the mean and maximum absolute single-step relative
// move over the series.
func stepMoves(prices []float64) (avg, max float64) {
	if len(prices) < 2 {
		return 0, 0
	}
	var total float64
	for i := 1; i < len(prices); i++ {
		move := math.Abs((prices[i] - prices[i-1]) / prices[i-1])
		total += move
		if move > max {
			max = move
		}
	}
	return total / float64(len(prices)-1), max
}
