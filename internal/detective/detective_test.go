package detective

import (
	"reflect"
	"testing"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func TestScoreRules(t *testing.T) {
	d := New(DefaultParams())
	cases := []struct {
		name    string
		in      Inputs
		score   int
		reasons []string
	}{
		{
			name:  "quiet",
			in:    Inputs{Volume: 1_000_000, AvgVolume: 1_000_000, RSI: 50, ChangePercent: 1, PERatio: ptr(12)},
			score: 0,
		},
		{
			name:    "volume anomaly",
			in:      Inputs{Volume: 4_000_000, AvgVolume: 1_000_000, RSI: 50, ChangePercent: 1, PERatio: ptr(12)},
			score:   25,
			reasons: []string{models.ReasonVolumeAnomaly},
		},
		{
			name:    "volume elevated",
			in:      Inputs{Volume: 2_500_000, AvgVolume: 1_000_000, RSI: 50, ChangePercent: 1, PERatio: ptr(12)},
			score:   10,
			reasons: []string{models.ReasonVolumeElevated},
		},
		{
			name:    "rsi critical",
			in:      Inputs{Volume: 1, AvgVolume: 1, RSI: 85, ChangePercent: 1, PERatio: ptr(12)},
			score:   20,
			reasons: []string{models.ReasonRSICritical},
		},
		{
			name:    "rsi high",
			in:      Inputs{Volume: 1, AvgVolume: 1, RSI: 75, ChangePercent: 1, PERatio: ptr(12)},
			score:   10,
			reasons: []string{models.ReasonRSIHigh},
		},
		{
			name:    "ceiling move",
			in:      Inputs{Volume: 1, AvgVolume: 1, RSI: 50, ChangePercent: 9.5, PERatio: ptr(12)},
			score:   15,
			reasons: []string{models.ReasonCeilingMove},
		},
		{
			name:    "missing pe on a rally",
			in:      Inputs{Volume: 1, AvgVolume: 1, RSI: 50, ChangePercent: 6, PERatio: nil},
			score:   40,
			reasons: []string{models.ReasonFundamentalMismatch},
		},
		{
			name:    "negative pe on a rally",
			in:      Inputs{Volume: 1, AvgVolume: 1, RSI: 50, ChangePercent: 6, PERatio: ptr(-3)},
			score:   40,
			reasons: []string{models.ReasonFundamentalMismatch},
		},
		{
			name:  "missing pe without a rally",
			in:    Inputs{Volume: 1, AvgVolume: 1, RSI: 50, ChangePercent: 2, PERatio: nil},
			score: 0,
		},
		{
			name:    "everything at once",
			in:      Inputs{Volume: 10_000_000, AvgVolume: 1_000_000, RSI: 90, ChangePercent: 12, PERatio: nil},
			score:   100,
			reasons: []string{models.ReasonVolumeAnomaly, models.ReasonRSICritical, models.ReasonCeilingMove, models.ReasonFundamentalMismatch},
		},
	}

	for _, tc := range cases {
		score, reasons := d.Score(tc.in)
		if score != tc.score {
			t.Fatalf("%s: score = %d, want %d", tc.name, score, tc.score)
		}
		if !reflect.DeepEqual(reasons, tc.reasons) && !(len(reasons) == 0 && len(tc.reasons) == 0) {
			t.Fatalf("%s: reasons = %v, want %v", tc.name, reasons, tc.reasons)
		}
	}
}

func TestScoreZeroAvgVolume(t *testing.T) {
	d := New(DefaultParams())
	score, reasons := d.Score(Inputs{Volume: 5_000_000, AvgVolume: 0, RSI: 50, ChangePercent: 1, PERatio: ptr(12)})
	if score != 0 || len(reasons) != 0 {
		t.Fatalf("zero avg volume scored %d %v", score, reasons)
	}
}

func TestAnalyzeFallsBackToSnapshotVolume(t *testing.T) {
	d := New(DefaultParams())
	rep := d.Analyze(models.InstrumentSnapshot{
		Symbol:  "SASA",
		Price:   39,
		Volume:  2_000_000,
		History: []float64{39, 39, 39},
	}, nil)
	if rep.AvgVolume != 2_000_000 {
		t.Fatalf("avg volume = %v, want snapshot fallback", rep.AvgVolume)
	}
	if rep.RSI != 50 {
		t.Fatalf("RSI = %v, want neutral on short history", rep.RSI)
	}
}

func TestSweepOrdering(t *testing.T) {
	d := New(DefaultParams())
	snapshots := map[string]models.InstrumentSnapshot{
		// Ceiling move plus missing P/E: 55 points.
		"HEKTS": {Symbol: "HEKTS", Price: 16, ChangePercent: 9.5, Volume: 1, AvgVolume: 1},
		// Quiet: 0 points. Symbol order breaks the tie with GARAN.
		"AKBNK": {Symbol: "AKBNK", Price: 45, ChangePercent: 0.5, Volume: 1, AvgVolume: 1},
		"GARAN": {Symbol: "GARAN", Price: 78, ChangePercent: 0.5, Volume: 1, AvgVolume: 1},
	}

	reports := d.Sweep(snapshots)
	got := make([]string, len(reports))
	for i, r := range reports {
		got[i] = r.Symbol
	}
	want := []string{"HEKTS", "AKBNK", "GARAN"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sweep order = %v, want %v", got, want)
	}
	if reports[0].RiskScore != 55 {
		t.Fatalf("top score = %d, want 55", reports[0].RiskScore)
	}
}
