// Package vigil implements the cross-market aggregator: a weighted vote
// over a fixed set of cross-asset proxies, an optional social sentiment
// signal and a simulated whale scan, reduced to a single directional
// decision with human-readable rationale.
package vigil

import (
	"fmt"
	"sort"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
)

// Params names the proxy symbols and every vote threshold.
type Params struct {
	CountryETF      string // emerging-market flow proxy
	BroadIndex      string // no vote rule; excluded from whale scan
	DollarIndex     string // currency-strength proxy
	VolatilityIndex string // fear gauge, read as a price level
	RiskAppetite    string // single-name tech bellwether
	SafeHaven       string // no vote rule; excluded from whale scan

	ETFMoveThreshold    float64 // ±% on the country ETF
	ETFVotes            float64 // votes on a decisive ETF move
	ETFNeutralNudge     float64 // small optimism when flat
	DollarUpThreshold   float64 // % rise: capital-flight risk
	DollarDownThreshold float64 // % fall: tailwind
	DollarVotes         float64
	FearLevel           float64 // vix price above forces HIGH risk
	FearVotes           float64
	AppetiteUp          float64 // % rise on the bellwether
	AppetiteDown        float64 // % fall (negative)
	AppetiteVotes       float64
	SocialNegative      float64 // avg sentiment below: warning
	SocialPositive      float64 // avg sentiment above: tailwind

	BuyThreshold  float64 // total votes at or above: BUY
	SellThreshold float64 // total votes at or below: SELL

	Whale WhaleParams
}

// DefaultParams returns the canonical vote model.
func DefaultParams() Params {
	return Params{
		CountryETF:          "TUR",
		BroadIndex:          "SPY",
		DollarIndex:         "UUP",
		VolatilityIndex:     "VIX",
		RiskAppetite:        "NVDA",
		SafeHaven:           "GLD",
		ETFMoveThreshold:    1.5,
		ETFVotes:            3,
		ETFNeutralNudge:     0.5,
		DollarUpThreshold:   0.5,
		DollarDownThreshold: -0.3,
		DollarVotes:         2,
		FearLevel:           20,
		FearVotes:           2,
		AppetiteUp:          1.5,
		AppetiteDown:        -2,
		AppetiteVotes:       1,
		SocialNegative:      -0.3,
		SocialPositive:      0.3,
		BuyThreshold:        3,
		SellThreshold:       -3,
		Whale:               DefaultWhaleParams(),
	}
}

// Analyzer runs the global aggregation. The rand source drives only the
// whale simulation; everything else is deterministic in its inputs.
type Analyzer struct {
	p     Params
	whale *WhaleScanner
	now   func() time.Time
}

func NewAnalyzer(p Params, rand service.RandSource) *Analyzer {
	return &Analyzer{
		p:     p,
		whale: NewWhaleScanner(p.Whale, rand),
		now:   time.Now,
	}
}

// AnalyzeGlobalMarkets reduces an instrument snapshot plus optional social
// signals into a VigilReport. Rules push their rationale messages in
// evaluation order; the report keeps that order.
func (a *Analyzer) AnalyzeGlobalMarkets(instruments map[string]models.InstrumentSnapshot, social []models.SocialSignal) models.VigilReport {
	var score float64
	var messages []string
	riskLevel := models.RiskMedium

	if tur, ok := instruments[a.p.CountryETF]; ok {
		switch {
		case tur.ChangePercent < -a.p.ETFMoveThreshold:
			score -= a.p.ETFVotes
			messages = append(messages, fmt.Sprintf("%s down %.2f%%: foreign outflow, sellers expected at the open", a.p.CountryETF, tur.ChangePercent))
		case tur.ChangePercent > a.p.ETFMoveThreshold:
			score += a.p.ETFVotes
			messages = append(messages, fmt.Sprintf("%s rally %.2f%%: foreign inflow, gap-up open expected", a.p.CountryETF, tur.ChangePercent))
		default:
			score += a.p.ETFNeutralNudge
			messages = append(messages, fmt.Sprintf("%s neutral (%.2f%%): cautious optimism", a.p.CountryETF, tur.ChangePercent))
		}
	}

	if uup, ok := instruments[a.p.DollarIndex]; ok {
		if uup.ChangePercent > a.p.DollarUpThreshold {
			score -= a.p.DollarVotes
			messages = append(messages, fmt.Sprintf("dollar strengthening (%s): capital-flight risk for emerging markets", a.p.DollarIndex))
		} else if uup.ChangePercent < a.p.DollarDownThreshold {
			score += a.p.DollarVotes
			messages = append(messages, fmt.Sprintf("dollar weakening (%s): tailwind for emerging markets", a.p.DollarIndex))
		}
	}

	if vix, ok := instruments[a.p.VolatilityIndex]; ok && vix.Price > a.p.FearLevel {
		score -= a.p.FearVotes
		riskLevel = models.RiskHigh
		messages = append(messages, fmt.Sprintf("%s alarm: fear gauge at %.1f, global risk appetite is shut", a.p.VolatilityIndex, vix.Price))
	}

	if bellwether, ok := instruments[a.p.RiskAppetite]; ok {
		if bellwether.ChangePercent > a.p.AppetiteUp {
			score += a.p.AppetiteVotes
			messages = append(messages, fmt.Sprintf("risk appetite high (%s): money flowing into tech", a.p.RiskAppetite))
		} else if bellwether.ChangePercent < a.p.AppetiteDown {
			score -= a.p.AppetiteVotes
			messages = append(messages, fmt.Sprintf("tech slump (%s): a global sell wave may trigger", a.p.RiskAppetite))
		}
	}

	var sentiment *models.SocialSentiment
	if len(social) > 0 {
		avg := 0.0
		top := social[0]
		for _, sig := range social {
			avg += sig.SentimentScore
			if sig.Volume > top.Volume {
				top = sig
			}
		}
		avg /= float64(len(social))

		if avg < a.p.SocialNegative {
			messages = append(messages, fmt.Sprintf("social sentiment negative (%s)", firstTopic(top, "selling")))
		} else if avg > a.p.SocialPositive {
			messages = append(messages, fmt.Sprintf("social sentiment positive (%s)", firstTopic(top, "buying")))
		}

		score += avg
		sentiment = &models.SocialSentiment{Score: avg, Summary: top.Summary}
	}

	alerts, whaleVotes := a.whale.Scan(a.whaleTargets(instruments), a.now())
	score += whaleVotes

	decision := models.DecisionNeutral
	strategy := "AMBUSH: direction unclear, wait for the whales to make a mistake and track iceberg orders"
	switch {
	case score >= a.p.BuyThreshold:
		decision = models.DecisionBuy
		riskLevel = models.RiskLow
		strategy = "ATTACK: wind at our back, dips are buying opportunities"
	case score <= a.p.SellThreshold:
		decision = models.DecisionSell
		riskLevel = models.RiskExtreme
		strategy = "SHIELD: storm incoming, move to cash and do not catch falling knives"
	}

	return models.VigilReport{
		Score:           score,
		Decision:        decision,
		RiskLevel:       riskLevel,
		Messages:        messages,
		SocialSentiment: sentiment,
		WhaleAlerts:     alerts,
		Strategy:        strategy,
	}
}

// whaleTargets returns the non-proxy instruments in stable symbol order,
// capped at the configured sample size. Sorting keeps the simulation
// reproducible for a fixed rand source despite map iteration order.
func (a *Analyzer) whaleTargets(instruments map[string]models.InstrumentSnapshot) []models.InstrumentSnapshot {
	proxies := map[string]bool{
		a.p.CountryETF:      true,
		a.p.BroadIndex:      true,
		a.p.DollarIndex:     true,
		a.p.VolatilityIndex: true,
		a.p.RiskAppetite:    true,
		a.p.SafeHaven:       true,
	}

	symbols := make([]string, 0, len(instruments))
	for sym := range instruments {
		if !proxies[sym] {
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)

	if len(symbols) > a.p.Whale.SampleSize {
		symbols = symbols[:a.p.Whale.SampleSize]
	}
	targets := make([]models.InstrumentSnapshot, 0, len(symbols))
	for _, sym := range symbols {
		targets = append(targets, instruments[sym])
	}
	return targets
}

func firstTopic(sig models.SocialSignal, fallback string) string {
	if len(sig.TrendingTopics) > 0 {
		return sig.TrendingTopics[0]
	}
	return fallback
}
