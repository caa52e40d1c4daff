// Package social provides a sentiment signal source. The shipped provider is
// a price-reactive simulation; a production deployment would back it with
// Twitter, Reddit or news APIs.
package social

import (
	"context"
	"math"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
)

// MockProvider implements service.SocialSignalProvider.
type MockProvider struct {
	rnd service.RandSource
}

func NewMockProvider(rnd service.RandSource) *MockProvider {
	return &MockProvider{rnd: rnd}
}

// Signals derives simulated crowd sentiment from the day's price change.
func (p *MockProvider) Signals(ctx context.Context, symbol string, priceChange float64) ([]models.SocialSignal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var twitterScore float64
	var twitterSummary string
	switch {
	case priceChange < -2:
		twitterScore = -0.8
		twitterSummary = "Panic selling trending. Users mentioning 'crash' and 'stop loss'."
	case priceChange > 2:
		twitterScore = 0.9
		twitterSummary = "'Moon' and 'ATH' trending. High retail euphoria."
	default:
		twitterScore = 0.1
		twitterSummary = "Mixed sentiment. Discussions on resistance levels."
	}

	twitterTopics := []string{"#bullrun", "#mooning"}
	if priceChange < 0 {
		twitterTopics = []string{"#crash", "#bearmarket"}
	}

	// Retail forums tend to buy the dip, so their score stays positive even
	// on down moves.
	redditScore := 0.6
	redditSummary := "Meme stock hype continues."
	if priceChange < -1 {
		redditScore = 0.4
		redditSummary = "WSB discussing 'Diamond Hands' and 'Buy the Dip'."
	}

	return []models.SocialSignal{
		{
			Source:         models.SourceTwitter,
			SentimentScore: twitterScore,
			Volume:         int(math.Floor(p.rnd.Float64()*5000)) + 1000,
			Summary:        twitterSummary,
			TrendingTopics: twitterTopics,
		},
		{
			Source:         models.SourceReddit,
			SentimentScore: redditScore,
			Volume:         int(math.Floor(p.rnd.Float64() * 2000)),
			Summary:        redditSummary,
			TrendingTopics: []string{"r/wallstreetbets", "HODL"},
		},
	}, nil
}
