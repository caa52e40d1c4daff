// Package screener applies exchange filtering and multi-key stable sorting
// over scored instruments.
package screener

import (
	"sort"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
)

// SortKey selects the comparator.
type SortKey string

const (
	SortSymbol SortKey = "symbol"
	SortPrice  SortKey = "price"
	SortRisk   SortKey = "riskScore"
	SortTrend  SortKey = "trend"
)

// Direction orders results ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState tracks the active sort column the way a table header does:
// clicking the active key flips the direction, clicking a new key selects
// it descending.
type SortState struct {
	Key       SortKey
	Direction Direction
}

// Toggle applies a header click to the state.
func (s *SortState) Toggle(key SortKey) {
	if s.Key == key && s.Direction == Desc {
		s.Direction = Asc
		return
	}
	s.Key = key
	s.Direction = Desc
}

// FilterAndSort returns a new slice holding the instruments that match the
// exchange filter (ExchangeAll passes everything), stably sorted by the
// given key and direction. Equal keys keep their input order.
func FilterAndSort(items []models.ScreenedInstrument, exchange string, key SortKey, dir Direction) []models.ScreenedInstrument {
	out := make([]models.ScreenedInstrument, 0, len(items))
	for _, it := range items {
		if exchange == models.ExchangeAll || string(it.Exchange) == exchange {
			out = append(out, it)
		}
	}

	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func lessFunc(key SortKey) func(a, b models.ScreenedInstrument) bool {
	switch key {
	case SortSymbol:
		return func(a, b models.ScreenedInstrument) bool { return a.Symbol < b.Symbol }
	case SortPrice:
		return func(a, b models.ScreenedInstrument) bool { return a.Price < b.Price }
	case SortTrend:
		return func(a, b models.ScreenedInstrument) bool { return trendWeight(a) < trendWeight(b) }
	default:
		return func(a, b models.ScreenedInstrument) bool { return a.Analysis.RiskScore < b.Analysis.RiskScore }
	}
}

// trendWeight folds direction and confidence into one comparable value.
// The bullish multiplier of 1000 dominates any confidence (≤99), so every
// bullish instrument groups before every bearish one.
func trendWeight(it models.ScreenedInstrument) int {
	w := it.Trend.Confidence
	if it.Trend.Trend == models.TrendBullish {
		w += 1000
	}
	return w
}
