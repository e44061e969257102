package momentum

import (
	"github.com/pulselabs/trendpulse/internal/aggregate"
	"github.com/pulselabs/trendpulse/internal/contracts"
)

// Strategy converts one ticker's aggregated statistics into a scored record.
// Each source has its own variant, so adding a source never touches an
// existing formula.
type Strategy interface {
	// Source identifies which feed this strategy scores
	Source() contracts.Source

	// Record produces the immutable output record for a ticker
	Record(ticker string, acc *aggregate.Accumulator) contracts.TickerRecord
}

// ScoreBook applies a strategy to every ticker in a book, in sorted ticker
// order so the output is deterministic
func ScoreBook(strategy Strategy, book *aggregate.Book) []contracts.TickerRecord {
	records := make([]contracts.TickerRecord, 0, book.Len())
	for _, ticker := range book.Tickers() {
		acc, _ := book.Get(ticker)
		records = append(records, strategy.Record(ticker, acc))
	}
	return records
}

// clampMomentum bounds a momentum score to [0, 100]
func clampMomentum(m int) int {
	if m < 0 {
		return 0
	}
	if m > 100 {
		return 100
	}
	return m
}
