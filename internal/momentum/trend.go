package momentum

import (
	"github.com/pulselabs/trendpulse/internal/aggregate"
	"github.com/pulselabs/trendpulse/internal/contracts"
)

// Trend-source scoring constants. The trend feed carries no native sentiment
// signal, so sentiment is pinned at a mildly positive constant.
const (
	trendBase          = 30
	trendPerMention    = 10
	trendCap           = 80
	trendForumBoost    = 15
	trendBoostedCap    = 95
	trendSentimentHint = 0.1
)

// TrendStrategy scores trend-feed tickers from their mention count, with a
// cross-source boost when the ticker is also present on the forum feed.
type TrendStrategy struct {
	alsoOnForum func(ticker string) bool
}

// NewTrendStrategy creates the trend scoring variant. The presence check is
// supplied by the caller from the forum aggregation's ticker keys.
func NewTrendStrategy(alsoOnForum func(ticker string) bool) *TrendStrategy {
	if alsoOnForum == nil {
		alsoOnForum = func(string) bool { return false }
	}
	return &TrendStrategy{alsoOnForum: alsoOnForum}
}

// Source identifies the trend feed
func (s *TrendStrategy) Source() contracts.Source {
	return contracts.SourceTrend
}

// Record computes momentum = min(80, 30 + c*10), plus a forum-presence boost
// of 15 capped at 95
func (s *TrendStrategy) Record(ticker string, acc *aggregate.Accumulator) contracts.TickerRecord {
	score := trendBase + acc.Mentions*trendPerMention
	if score > trendCap {
		score = trendCap
	}

	if s.alsoOnForum(ticker) {
		score += trendForumBoost
		if score > trendBoostedCap {
			score = trendBoostedCap
		}
	}

	return contracts.TickerRecord{
		Ticker:    contracts.NormalizeTicker(ticker),
		Source:    contracts.SourceTrend,
		Momentum:  clampMomentum(score),
		Mentions:  acc.Mentions,
		Sentiment: trendSentimentHint,
		Subgroup:  "",
		Posts:     0,
	}
}
