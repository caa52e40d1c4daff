package models

// RiskLevel bands a numeric risk score into a categorical label.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// Hint tags name the scoring rule that fired. They double as UI keys, so
// the set of values and their first-fired order are part of the contract.
const (
	HintRSIHigh           = "rsi_high"
	HintRSILow            = "rsi_low"
	HintVolatilityExtreme = "volatility_extreme"
	HintPumpRisk          = "pump_risk"
)

// AnalysisResult is the output of one risk scoring pass. It is built fresh
// on every call and never mutated afterwards.
type AnalysisResult struct {
	RiskScore  int       // clamped to [0,100]
	RiskLevel  RiskLevel // LOW, MEDIUM or HIGH
	Hints      []string  // deduplicated, rule evaluation order
	RSI        float64
	Volatility float64
}

// TrendDirection is the naive two-point trend label.
type TrendDirection string

const (
	TrendBullish TrendDirection = "Bullish"
	TrendBearish TrendDirection = "Bearish"
)

// TrendResult carries the trend label and a deterministic confidence
// percentage. Same series and seed always produce the same result.
type TrendResult struct {
	Trend      TrendDirection
	Confidence int // clamped to [0,99]
}

// ForensicReport is the extended per-symbol verdict from the detective
// sweep. Unlike AnalysisResult it folds in volume and fundamental checks.
type ForensicReport struct {
	Symbol        string
	Price         float64
	ChangePercent float64
	Volume        float64
	AvgVolume     float64
	RSI           float64
	RiskScore     int
	Reasons       []string
}

// Forensic reason tags, ordered by rule evaluation.
const (
	ReasonVolumeAnomaly       = "volume_anomaly"
	ReasonVolumeElevated      = "volume_elevated"
	ReasonRSICritical         = "rsi_critical"
	ReasonRSIHigh             = "rsi_high"
	ReasonCeilingMove         = "ceiling_move"
	ReasonFundamentalMismatch = "fundamental_mismatch"
)
