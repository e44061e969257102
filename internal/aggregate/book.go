package aggregate

import "sort"

// Accumulator collects per-ticker statistics for one source while
// observations are folded in. Discarded after momentum is computed.
type Accumulator struct {
	Mentions         int
	SentimentSum     float64
	EngagementScores []float64
	Posts            int
	Subgroup         string
}

// AvgSentiment returns sentiment_sum / max(1, mentions)
func (a *Accumulator) AvgSentiment() float64 {
	div := a.Mentions
	if div < 1 {
		div = 1
	}
	return a.SentimentSum / float64(div)
}

// AvgEngagement returns the mean of the recorded engagement scores
func (a *Accumulator) AvgEngagement() float64 {
	if len(a.EngagementScores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range a.EngagementScores {
		sum += s
	}
	return sum / float64(len(a.EngagementScores))
}

// Book maps tickers to their accumulators for a single source. The
// get-or-create step is explicit so accumulator construction is never a
// hidden side effect of a lookup.
type Book struct {
	entries map[string]*Accumulator
}

// NewBook creates an empty book
func NewBook() *Book {
	return &Book{entries: make(map[string]*Accumulator)}
}

// GetOrCreate returns the accumulator for a ticker, creating it if absent
func (b *Book) GetOrCreate(ticker string) *Accumulator {
	if acc, ok := b.entries[ticker]; ok {
		return acc
	}
	acc := &Accumulator{}
	b.entries[ticker] = acc
	return acc
}

// Get returns the accumulator for a ticker if present
func (b *Book) Get(ticker string) (*Accumulator, bool) {
	acc, ok := b.entries[ticker]
	return acc, ok
}

// Has reports whether the book has an entry for the ticker
func (b *Book) Has(ticker string) bool {
	_, ok := b.entries[ticker]
	return ok
}

// Len returns the number of distinct tickers in the book
func (b *Book) Len() int {
	return len(b.entries)
}

// Tickers returns the book's tickers in sorted order, so downstream
// iteration is deterministic
func (b *Book) Tickers() []string {
	tickers := make([]string, 0, len(b.entries))
	for t := range b.entries {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
