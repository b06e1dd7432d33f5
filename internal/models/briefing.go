package models

// Source is a web reference returned alongside a generated briefing.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// MarketBriefing is the AI-generated daily summary for the watchlist.
type MarketBriefing struct {
	Date           string   `json:"date"`
	Summary        string   `json:"summary"`
	KeyTakeaways   []string `json:"keyTakeaways"`
	SentimentScore float64  `json:"sentimentScore"`
	Sources        []Source `json:"sources"`
}

// Sentiment bands used by the dashboard gauge.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// Sentiment maps the score onto bullish (>= 60), bearish (<= 40) or neutral.
func (b *MarketBriefing) Sentiment() string {
	switch {
	case b.SentimentScore >= 60:
		return SentimentBullish
	case b.SentimentScore <= 40:
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}
