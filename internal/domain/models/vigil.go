package models

import "time"

// Decision is the directional outcome of a global market aggregation pass.
type Decision string

const (
	DecisionBuy     Decision = "BUY"
	DecisionSell    Decision = "SELL"
	DecisionNeutral Decision = "NEUTRAL"
)

// WhaleAlertType classifies a simulated order-flow anomaly.
type WhaleAlertType string

const (
	WhaleIceberg       WhaleAlertType = "ICEBERG"
	WhaleDarkRoom      WhaleAlertType = "DARK_ROOM"
	WhaleUnusualVolume WhaleAlertType = "UNUSUAL_VOLUME"
	WhaleSpoofing      WhaleAlertType = "SPOOFING"
)

// WhaleAlert is an ephemeral order-flow anomaly. Alerts are regenerated on
// every aggregation pass and never persisted.
type WhaleAlert struct {
	Symbol      string
	Type        WhaleAlertType
	Description string
	Severity    RiskLevel
	Timestamp   time.Time
}

// SocialSentiment summarizes the aggregated social signal inside a report.
type SocialSentiment struct {
	Score   float64 // average sentiment in [-1,1]
	Summary string
}

// VigilReport is the cross-market aggregation verdict. Messages keep the
// order in which the rules pushed them; the UI renders them as-is.
type VigilReport struct {
	Score           float64
	Decision        Decision
	RiskLevel       RiskLevel
	Messages        []string
	SocialSentiment *SocialSentiment
	WhaleAlerts     []WhaleAlert
	Strategy        string
}
