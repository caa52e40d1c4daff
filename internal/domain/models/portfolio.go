package models

// Holding is a user position keyed by symbol. Display-side only; the
// scoring core never reads holdings.
type Holding struct {
	Symbol    string
	Quantity  float64
	CostBasis float64 // average cost per unit
}

// PortfolioValuation is the marked-to-market view of all holdings against
// a snapshot of current prices.
type PortfolioValuation struct {
	MarketValue float64
	Cost        float64
	PnL         float64
	PnLPercent  float64
}
