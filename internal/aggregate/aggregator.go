package aggregate

import (
	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/extract"
	"github.com/pulselabs/trendpulse/internal/sentiment"
)

// Aggregator folds raw observations into per-ticker statistics for one
// source. It is a pure fold: the returned book is built incrementally and
// never mutated afterwards.
type Aggregator struct {
	extractor *extract.Extractor
	scorer    *sentiment.Scorer
}

// NewAggregator creates an aggregator over the given extractor and scorer
func NewAggregator(extractor *extract.Extractor, scorer *sentiment.Scorer) *Aggregator {
	return &Aggregator{
		extractor: extractor,
		scorer:    scorer,
	}
}

// Aggregate runs the extractor and scorer once per observation and folds
// the results into a book. An observation contributing zero tickers affects
// nothing; an empty observation list yields an empty book.
func (a *Aggregator) Aggregate(observations []contracts.RawObservation) *Book {
	book := NewBook()

	for _, obs := range observations {
		tickers := a.extractor.Extract(obs.Text)
		if len(tickers) == 0 {
			continue
		}

		score := a.scorer.Score(obs.Text)

		for _, ticker := range tickers {
			acc := book.GetOrCreate(ticker)
			acc.Mentions++
			acc.SentimentSum += score
			acc.EngagementScores = append(acc.EngagementScores, obs.EngagementScore)
			acc.Posts++
			acc.Subgroup = obs.SourceSubgroup // last write wins, informational only
		}
	}

	return book
}
