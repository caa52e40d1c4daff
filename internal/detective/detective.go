// Package detective implements the extended forensic risk scorer. It runs
// the same additive model as internal/analysis but folds in volume-ratio
// and fundamental-mismatch checks that need per-symbol context beyond the
// raw price series.
package detective

import (
	"sort"

	"github.com/mmkaya-ui/borsa2/internal/analysis"
	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

// Params names every forensic threshold.
type Params struct {
	RSIPeriod       int
	VolumeAnomaly   float64 // volume/avg above: +AnomalyPoints
	VolumeElevated  float64 // volume/avg above: +ElevatedPoints
	AnomalyPoints   int
	ElevatedPoints  int
	RSICritical     float64
	RSIHigh         float64
	CriticalPoints  int
	HighPoints      int
	CeilingMove     float64 // day change % above: +CeilingPoints
	CeilingPoints   int
	MismatchChange  float64 // day change % gate for the P/E check
	MismatchPECap   float64 // P/E above is suspect
	MismatchPoints  int
	AvgVolumeWindow int
}

// DefaultParams returns the canonical forensic thresholds.
func DefaultParams() Params {
	return Params{
		RSIPeriod:       14,
		VolumeAnomaly:   3.0,
		VolumeElevated:  2.0,
		AnomalyPoints:   25,
		ElevatedPoints:  10,
		RSICritical:     80,
		RSIHigh:         70,
		CriticalPoints:  20,
		HighPoints:      10,
		CeilingMove:     9.0,
		CeilingPoints:   15,
		MismatchChange:  5.0,
		MismatchPECap:   50,
		MismatchPoints:  40,
		AvgVolumeWindow: 20,
	}
}

// Detective scores single instruments and sweeps watchlists. Stateless and
// safe for concurrent use.
type Detective struct {
	p Params
}

func New(p Params) *Detective {
	return &Detective{p: p}
}

// Inputs are the per-symbol facts the forensic rules need. PERatio is nil
// when the fundamental figure is unavailable, which itself is a signal.
type Inputs struct {
	Price         float64
	Volume        float64
	AvgVolume     float64
	RSI           float64
	ChangePercent float64
	PERatio       *float64
}

// Score runs the forensic rules over one instrument. The returned reasons
// keep rule evaluation order; the score is clamped to [0,100].
func (d *Detective) Score(in Inputs) (int, []string) {
	score := 0
	var reasons []string

	volumeRatio := 0.0
	if in.AvgVolume > 0 {
		volumeRatio = in.Volume / in.AvgVolume
	}
	switch {
	case volumeRatio > d.p.VolumeAnomaly:
		score += d.p.AnomalyPoints
		reasons = append(reasons, models.ReasonVolumeAnomaly)
	case volumeRatio > d.p.VolumeElevated:
		score += d.p.ElevatedPoints
		reasons = append(reasons, models.ReasonVolumeElevated)
	}

	switch {
	case in.RSI > d.p.RSICritical:
		score += d.p.CriticalPoints
		reasons = append(reasons, models.ReasonRSICritical)
	case in.RSI > d.p.RSIHigh:
		score += d.p.HighPoints
		reasons = append(reasons, models.ReasonRSIHigh)
	}

	if in.ChangePercent > d.p.CeilingMove {
		score += d.p.CeilingPoints
		reasons = append(reasons, models.ReasonCeilingMove)
	}

	// Loss-making or absurdly valued names rallying hard smell like a bubble.
	suspectPE := in.PERatio == nil || *in.PERatio < 0 || *in.PERatio > d.p.MismatchPECap
	if suspectPE && in.ChangePercent > d.p.MismatchChange {
		score += d.p.MismatchPoints
		reasons = append(reasons, models.ReasonFundamentalMismatch)
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

// Analyze builds a full forensic report for one snapshot. RSI comes from
// the snapshot's history; avg volume falls back to the snapshot figure
// when the provider supplies none.
func (d *Detective) Analyze(snap models.InstrumentSnapshot, peRatio *float64) models.ForensicReport {
	rsi := analysis.RSI(snap.History, d.p.RSIPeriod)
	avgVolume := snap.AvgVolume
	if avgVolume <= 0 {
		avgVolume = snap.Volume
	}

	score, reasons := d.Score(Inputs{
		Price:         snap.Price,
		Volume:        snap.Volume,
		AvgVolume:     avgVolume,
		RSI:           rsi,
		ChangePercent: snap.ChangePercent,
		PERatio:       peRatio,
	})

	return models.ForensicReport{
		Symbol:        snap.Symbol,
		Price:         snap.Price,
		ChangePercent: snap.ChangePercent,
		Volume:        snap.Volume,
		AvgVolume:     avgVolume,
		RSI:           rsi,
		RiskScore:     score,
		Reasons:       reasons,
	}
}

// Sweep analyzes every snapshot and returns reports ordered by risk score
// descending, symbol ascending on ties.
func (d *Detective) Sweep(snapshots map[string]models.InstrumentSnapshot) []models.ForensicReport {
	reports := make([]models.ForensicReport, 0, len(snapshots))
	for _, snap := range snapshots {
		reports = append(reports, d.Analyze(snap, nil))
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].RiskScore != reports[j].RiskScore {
			return reports[i].RiskScore > reports[j].RiskScore
		}
		return reports[i].Symbol < reports[j].Symbol
	})
	return reports
}
