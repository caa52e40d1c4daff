package models

// SocialSource identifies where a sentiment signal was sampled from.
type SocialSource string

const (
	SourceTwitter SocialSource = "TWITTER"
	SourceReddit  SocialSource = "REDDIT"
	SourceNews    SocialSource = "NEWS"
)

// SocialSignal is one sampled sentiment reading. SentimentScore is in
// [-1,1]; Volume is the number of mentions behind the reading.
type SocialSignal struct {
	Source         SocialSource
	SentimentScore float64
	Volume         int
	Summary        string
	TrendingTopics []string
}
