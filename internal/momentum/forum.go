package momentum

import (
	"math"

	"github.com/pulselabs/trendpulse/internal/aggregate"
	"github.com/pulselabs/trendpulse/internal/contracts"
)

// ForumStrategy scores forum-sourced tickers. Volume and engagement are
// rewarded logarithmically; sentiment is rewarded by magnitude regardless of
// direction, since the alert stage is what separates bullish from bearish
// action.
type ForumStrategy struct{}

// NewForumStrategy creates the forum scoring variant
func NewForumStrategy() *ForumStrategy {
	return &ForumStrategy{}
}

// Source identifies the forum feed
func (s *ForumStrategy) Source() contracts.Source {
	return contracts.SourceForum
}

// Record computes:
//
//	mention    = min(40, log10(max(1, mentions)) * 20)
//	engagement = min(30, log10(max(1, avg_engagement)) * 10)
//	sentiment  = min(30, (|avg_sentiment| + 0.5) * 20)
//	momentum   = clamp(0, 100, floor(mention + engagement + sentiment))
func (s *ForumStrategy) Record(ticker string, acc *aggregate.Accumulator) contracts.TickerRecord {
	avgSentiment := acc.AvgSentiment()

	mentionScore := math.Min(40, math.Log10(math.Max(1, float64(acc.Mentions)))*20)
	engagementScore := math.Min(30, math.Log10(math.Max(1, acc.AvgEngagement()))*10)
	sentimentScore := math.Min(30, (math.Abs(avgSentiment)+0.5)*20)

	score := clampMomentum(int(math.Floor(mentionScore + engagementScore + sentimentScore)))

	return contracts.TickerRecord{
		Ticker:    contracts.NormalizeTicker(ticker),
		Source:    contracts.SourceForum,
		Momentum:  score,
		Mentions:  acc.Mentions,
		Sentiment: round2(avgSentiment),
		Subgroup:  acc.Subgroup,
		Posts:     acc.Posts,
	}
}

// round2 rounds to 2 decimal places for display
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
