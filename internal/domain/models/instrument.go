package models

// Exchange identifies the venue an instrument trades on.
type Exchange string

const (
	ExchangeBIST   Exchange = "BIST"
	ExchangeNASDAQ Exchange = "NASDAQ"
	ExchangeCrypto Exchange = "CRYPTO"

	// ExchangeAll is the filter sentinel that matches every venue.
	ExchangeAll = "ALL"
)

// InstrumentSnapshot is a point-in-time view of a single instrument as
// delivered by a snapshot provider. History is an ordered, time-ascending
// price series; it is treated as immutable once produced.
type InstrumentSnapshot struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        float64
	AvgVolume     float64
	Exchange      Exchange
	Currency      string
	History       []float64
	Open          float64
	PrevClose     float64
	DayHigh       float64
	DayLow        float64
}

// ScreenedInstrument pairs a snapshot with its derived analysis, the unit
// the screener filters and sorts over.
type ScreenedInstrument struct {
	InstrumentSnapshot
	Analysis AnalysisResult
	Trend    TrendResult
}
