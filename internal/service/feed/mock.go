// Package feed provides market snapshot providers. The mock provider
// synthesizes a full instrument universe with random walks; the ws provider
// streams live quotes over a websocket.
package feed

import (
	"context"
	"math"
	"sync"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
)

type listing struct {
	Symbol string
	Name   string
	Base   float64
}

var bistListings = []listing{
	{"THYAO", "Türk Hava Yolları", 285},
	{"GARAN", "Garanti BBVA", 78},
	{"ASELS", "Aselsan", 52},
	{"EREGL", "Ereğli Demir Çelik", 42},
	{"KCHOL", "Koç Holding", 175},
	{"SISE", "Şişecam", 50},
	{"AKBNK", "Akbank", 45},
	{"BIMAS", "BİM Mağazalar", 380},
	{"TUPRS", "Tüpraş", 170},
	{"SASA", "SASA Polyester", 39},
	{"HEKTS", "Hektaş", 16},
	{"PETKM", "Petkim", 21},
	{"TOASO", "Tofaş Oto", 260},
	{"FROTO", "Ford Otosan", 1050},
	{"KONTR", "Kontrolmatik", 215},
	{"EKGYO", "Emlak Konut", 11},
	{"VESTL", "Vestel", 92},
	{"ARCLK", "Arçelik", 165},
	{"TCELL", "Turkcell", 85},
	{"TTKOM", "Türk Telekom", 48},
	{"YKBNK", "Yapı Kredi", 32},
	{"ISCTR", "İş Bankası (C)", 36},
	{"SAHOL", "Sabancı Holding", 95},
	{"PGSUS", "Pegasus", 880},
	{"MGROS", "Migros", 510},
	{"KOZAL", "Koza Altın", 23},
	{"TAVHL", "TAV Havalimanları", 180},
	{"OTKAR", "Otokar", 540},
	{"TTRAK", "Türk Traktör", 920},
	{"ULKER", "Ülker Bisküvi", 115},
	{"SOKM", "Şok Marketler", 65},
	{"MAVI", "Mavi Giyim", 140},
	{"AEFES", "Anadolu Efes", 155},
	{"AKSEN", "Aksa Enerji", 42},
	{"CCOLA", "Coca-Cola İçecek", 620},
	{"DOAS", "Doğuş Otomotiv", 290},
	{"ENJSA", "Enerjisa", 62},
	{"HALKB", "Halkbank", 16},
	{"VAKBN", "Vakıfbank", 18},
	{"LOGO", "Logo Yazılım", 95},
	{"ASTOR", "Astor Enerji", 110},
	{"GWIND", "Galata Wind", 28},
}

var nasdaqListings = []listing{
	{"AAPL", "Apple Inc.", 175},
	{"GOOGL", "Alphabet Inc.", 140},
	{"MSFT", "Microsoft Corp.", 410},
	{"AMZN", "Amazon.com", 175},
	{"TSLA", "Tesla, Inc.", 190},
	{"NVDA", "NVIDIA Corp.", 720},
	{"META", "Meta Platforms", 470},
	{"NFLX", "Netflix", 580},
	{"AMD", "AMD", 175},
	{"INTC", "Intel Corp.", 43},
	{"CRM", "Salesforce", 290},
	{"ADBE", "Adobe", 580},
	{"ORCL", "Oracle", 112},
	{"CSCO", "Cisco", 49},
	{"QCOM", "Qualcomm", 150},
	{"JPM", "JPMorgan Chase", 180},
	{"V", "Visa Inc.", 280},
	{"WMT", "Walmart", 170},
	{"UNH", "UnitedHealth", 510},
	{"MA", "Mastercard", 460},
	{"KO", "Coca-Cola Co.", 60},
	{"PEP", "PepsiCo", 168},
	{"COST", "Costco", 740},
	{"MCD", "McDonald's", 290},
	{"DIS", "Walt Disney", 110},
	{"PFE", "Pfizer", 27},
	{"XOM", "Exxon Mobil", 102},
	{"LLY", "Eli Lilly", 750},
	{"AVGO", "Broadcom", 1250},
	{"IBM", "IBM", 185},
	{"GS", "Goldman Sachs", 385},
	{"CAT", "Caterpillar", 320},
	{"BA", "Boeing", 205},
	{"F", "Ford Motor", 12},
	{"GM", "General Motors", 38},
	{"SHOP", "Shopify", 80},
	{"PYPL", "PayPal", 60},
	{"UBER", "Uber", 75},
	{"ABNB", "Airbnb", 150},
	{"PLTR", "Palantir", 24},
	{"COIN", "Coinbase", 160},
	{"MSTR", "MicroStrategy", 700},
	{"BLK", "BlackRock", 800},
	{"AXP", "American Express", 210},
	{"SBUX", "Starbucks", 95},
	{"NKE", "Nike", 105},
}

var cryptoListings = []listing{
	{"BTC-USD", "Bitcoin", 52000},
	{"ETH-USD", "Ethereum", 2900},
	{"USDT-USD", "Tether", 1.00},
	{"BNB-USD", "Binance Coin", 380},
	{"SOL-USD", "Solana", 115},
	{"XRP-USD", "Ripple", 0.58},
	{"ADA-USD", "Cardano", 0.62},
	{"AVAX-USD", "Avalanche", 38},
	{"DOGE-USD", "Dogecoin", 0.088},
	{"TRX-USD", "TRON", 0.13},
	{"LINK-USD", "Chainlink", 20},
	{"DOT-USD", "Polkadot", 8.20},
	{"MATIC-USD", "Polygon", 0.98},
	{"SHIB-USD", "Shiba Inu", 0.0000095},
	{"LTC-USD", "Litecoin", 72},
	{"BCH-USD", "Bitcoin Cash", 270},
	{"UNI-USD", "Uniswap", 7.50},
	{"XMR-USD", "Monero", 130},
	{"ATOM-USD", "Cosmos", 10.50},
	{"NEAR-USD", "NEAR Protocol", 3.90},
	{"INJ-USD", "Injective", 35},
	{"APT-USD", "Aptos", 9.50},
	{"OP-USD", "Optimism", 3.80},
	{"AAVE-USD", "Aave", 95},
	{"ALGO-USD", "Algorand", 0.19},
	{"FTM-USD", "Fantom", 0.42},
	{"MKR-USD", "Maker", 2100},
	{"SAND-USD", "The Sandbox", 0.52},
	{"MANA-USD", "Decentraland", 0.48},
	{"EGLD-USD", "MultiversX", 58},
}

// Macro proxies used by the global market monitor. They trade alongside the
// equity universe so a single snapshot fetch covers both.
var macroListings = []listing{
	{"TUR", "iShares MSCI Turkey ETF", 38},
	{"SPY", "SPDR S&P 500 ETF", 500},
	{"UUP", "Invesco DB US Dollar Bullish", 29},
	{"VIX", "CBOE Volatility Index", 15},
	{"GLD", "SPDR Gold Shares", 190},
}

// volatileSymbols get a wider random walk, which keeps the risk scorer's
// volatility and pump rules exercised in mock mode.
var volatileSymbols = map[string]struct{}{
	"DOGE-USD": {},
	"SHIB-USD": {},
	"SASA":     {},
	"XRP-USD":  {},
	"TSLA":     {},
	"NVDA":     {},
	"GME":      {},
}

const (
	historyPoints = 20
	priceFloor    = 0.000001
)

// MockProvider implements service.SnapshotProvider with synthetic data.
type MockProvider struct {
	mu  sync.Mutex
	rnd service.RandSource
}

func NewMockProvider(rnd service.RandSource) *MockProvider {
	return &MockProvider{rnd: rnd}
}

// Fetch regenerates a snapshot for the whole universe.
func (p *MockProvider) Fetch(ctx context.Context) (map[string]models.InstrumentSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]models.InstrumentSnapshot, len(bistListings)+len(nasdaqListings)+len(cryptoListings)+len(macroListings))
	for _, l := range bistListings {
		out[l.Symbol] = p.generate(l, models.ExchangeBIST, "TRY")
	}
	for _, l := range nasdaqListings {
		out[l.Symbol] = p.generate(l, models.ExchangeNASDAQ, "USD")
	}
	for _, l := range cryptoListings {
		out[l.Symbol] = p.generate(l, models.ExchangeCrypto, "USD")
	}
	for _, l := range macroListings {
		if _, ok := out[l.Symbol]; ok {
			continue
		}
		out[l.Symbol] = p.generate(l, models.ExchangeNASDAQ, "USD")
	}
	return out, nil
}

func (p *MockProvider) generate(l listing, exchange models.Exchange, currency string) models.InstrumentSnapshot {
	_, volatile := volatileSymbols[l.Symbol]
	volFactor := 0.05
	walkFactor := 0.02
	if volatile {
		volFactor = 0.15
		walkFactor = 0.08
	}

	pctVariation := (p.rnd.Float64() - 0.5) * volFactor
	variation := l.Base * pctVariation
	price := math.Max(priceFloor, l.Base+variation)

	prevClose := l.Base
	open := l.Base + l.Base*(p.rnd.Float64()-0.5)*0.01
	high := math.Max(price, math.Max(open, prevClose)) * (1 + p.rnd.Float64()*0.02)
	low := math.Min(price, math.Min(open, prevClose)) * (1 - p.rnd.Float64()*0.02)

	history := make([]float64, historyPoints)
	history[0] = price
	for i := 1; i < historyPoints; i++ {
		prev := history[i-1]
		move := prev * (p.rnd.Float64() - 0.5) * walkFactor
		history[i] = math.Max(priceFloor, prev+move)
	}

	volume := math.Floor(p.rnd.Float64()*9_000_000) + 1_000_000
	avgVolume := math.Floor(p.rnd.Float64()*8_000_000) + 1_000_000

	places := decimalPlaces(l.Base)
	return models.InstrumentSnapshot{
		Symbol:        l.Symbol,
		Name:          l.Name,
		Price:         round(price, places),
		Change:        round(variation, places),
		ChangePercent: round(pctVariation*100, 2),
		Volume:        volume,
		AvgVolume:     avgVolume,
		Exchange:      exchange,
		Currency:      currency,
		History:       history,
		Open:          round(open, places),
		PrevClose:     round(prevClose, places),
		DayHigh:       round(high, places),
		DayLow:        round(low, places),
	}
}

func decimalPlaces(price float64) int {
	switch {
	case price < 0.01:
		return 6
	case price < 1:
		return 4
	default:
		return 2
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
