package vigil

import (
	"fmt"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
)

// WhaleParams configures the simulated order-flow scan.
//
// This is a mock/placeholder boundary, not a real detector: a faithful
// implementation would need live order-book and tape data this system does
// not have. Only the alert shape is contractual.
type WhaleParams struct {
	SampleSize       int     // instruments scanned per pass
	IcebergDraw      float64 // draw above: iceberg alert
	IcebergMinVolume float64 // liquidity gate for icebergs
	IcebergVote      float64 // hidden buying is mildly bullish
	DarkRoomDraw     float64 // draw below: dark-room alert
}

// DefaultWhaleParams returns the canonical simulation thresholds.
func DefaultWhaleParams() WhaleParams {
	return WhaleParams{
		SampleSize:       5,
		IcebergDraw:      0.85,
		IcebergMinVolume: 1_000_000,
		IcebergVote:      0.5,
		DarkRoomDraw:     0.1,
	}
}

// WhaleScanner draws once per target against both alert thresholds, the
// same draw gating both, so one instrument can trip at most one of the two.
type WhaleScanner struct {
	p    WhaleParams
	rand service.RandSource
}

func NewWhaleScanner(p WhaleParams, rand service.RandSource) *WhaleScanner {
	return &WhaleScanner{p: p, rand: rand}
}

// Scan emits alerts for the given targets and returns the vote delta the
// alerts contribute. ICEBERG adds a small positive vote; DARK_ROOM is
// informational only.
func (w *WhaleScanner) Scan(targets []models.InstrumentSnapshot, now time.Time) ([]models.WhaleAlert, float64) {
	var alerts []models.WhaleAlert
	var votes float64

	for _, target := range targets {
		draw := w.rand.Float64()

		if draw > w.p.IcebergDraw && target.Volume > w.p.IcebergMinVolume {
			alerts = append(alerts, models.WhaleAlert{
				Symbol:      target.Symbol,
				Type:        models.WhaleIceberg,
				Description: fmt.Sprintf("hidden buying detected: a 1.2M-lot order is being worked off-book in %s", target.Symbol),
				Severity:    models.RiskHigh,
				Timestamp:   now,
			})
			votes += w.p.IcebergVote
		}

		if draw < w.p.DarkRoomDraw {
			alerts = append(alerts, models.WhaleAlert{
				Symbol:      target.Symbol,
				Type:        models.WhaleDarkRoom,
				Description: fmt.Sprintf("closing-auction deviation: %s marked roughly 2%% away from the tape at the close", target.Symbol),
				Severity:    models.RiskMedium,
				Timestamp:   now,
			})
		}
	}

	return alerts, votes
}
