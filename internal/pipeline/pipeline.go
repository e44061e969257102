package pipeline

import (
	"strings"
	"sync"
	"time"

	"github.com/pulselabs/trendpulse/internal/aggregate"
	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/extract"
	"github.com/pulselabs/trendpulse/internal/momentum"
	"github.com/pulselabs/trendpulse/internal/selection"
	"github.com/pulselabs/trendpulse/internal/sentiment"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// Pipeline wires the extractor, scorer, aggregator, momentum strategies and
// ranker into the end-to-end aggregation entry point. All stages are pure;
// identical observation sequences produce identical ranked output.
type Pipeline struct {
	aggregator *aggregate.Aggregator
	ranker     *selection.Ranker
	logger     *logger.Logger

	// now is swappable for deterministic tests
	now func() time.Time
}

// New creates a pipeline over the given vocabulary and lexicon
func New(vocab *extract.Vocabulary, lexicon *sentiment.Lexicon, topN int, log *logger.Logger) *Pipeline {
	return &Pipeline{
		aggregator: aggregate.NewAggregator(
			extract.NewExtractor(vocab),
			sentiment.NewScorer(lexicon),
		),
		ranker: selection.NewRanker(topN),
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the timestamp source, for tests
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// AggregateAndScore folds both sources' observations into ranked records.
// The per-source aggregations are independent, so they run concurrently;
// trend scoring waits for the forum book because of the cross-source boost.
func (p *Pipeline) AggregateAndScore(forumObs, trendObs []contracts.RawObservation) *contracts.RankedResult {
	var forumBook, trendBook *aggregate.Book

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		forumBook = p.aggregator.Aggregate(forumObs)
	}()
	go func() {
		defer wg.Done()
		trendBook = p.aggregator.Aggregate(trendObs)
	}()
	wg.Wait()

	forumRecords := momentum.ScoreBook(momentum.NewForumStrategy(), forumBook)

	trendStrategy := momentum.NewTrendStrategy(func(ticker string) bool {
		return forumBook.Has(strings.TrimPrefix(ticker, contracts.SigilPrefix))
	})
	trendRecords := momentum.ScoreBook(trendStrategy, trendBook)

	merged := p.ranker.Merge(append(forumRecords, trendRecords...))

	p.logger.WithFields(map[string]interface{}{
		"forum_tickers": forumBook.Len(),
		"trend_tickers": trendBook.Len(),
		"merged":        len(merged),
	}).Debug("Scan pipeline completed")

	return &contracts.RankedResult{
		Trends:  merged,
		Updated: p.now().UTC(),
		Sources: contracts.SourceCounts{
			Reddit:  forumBook.Len(),
			Twitter: trendBook.Len(),
		},
	}
}
