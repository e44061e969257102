package aggregate

import (
	"testing"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/extract"
	"github.com/pulselabs/trendpulse/internal/sentiment"
)

func testAggregator() *Aggregator {
	vocab := extract.NewVocabulary([]string{"NVDA", "BTC", "GME"})
	return NewAggregator(
		extract.NewExtractor(vocab),
		sentiment.NewScorer(sentiment.DefaultLexicon()),
	)
}

func TestAggregate_WorkedExample(t *testing.T) {
	agg := testAggregator()

	book := agg.Aggregate([]contracts.RawObservation{
		{Text: "$NVDA moon moon", EngagementScore: 100, SourceSubgroup: "wallstreetbets"},
		{Text: "NVDA puts", EngagementScore: 50, SourceSubgroup: "wallstreetbets"},
	})

	acc, ok := book.Get("NVDA")
	if !ok {
		t.Fatal("expected NVDA entry")
	}

	if acc.Mentions != 2 {
		t.Errorf("Mentions = %d, want 2", acc.Mentions)
	}
	if acc.SentimentSum != 0.0 {
		t.Errorf("SentimentSum = %v, want 0.0", acc.SentimentSum)
	}
	if got := acc.AvgSentiment(); got != 0.0 {
		t.Errorf("AvgSentiment() = %v, want 0.0", got)
	}
	if got := acc.AvgEngagement(); got != 75.0 {
		t.Errorf("AvgEngagement() = %v, want 75.0", got)
	}
	if acc.Posts != 2 {
		t.Errorf("Posts = %d, want 2", acc.Posts)
	}
	if acc.Subgroup != "wallstreetbets" {
		t.Errorf("Subgroup = %q, want wallstreetbets", acc.Subgroup)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	agg := testAggregator()

	book := agg.Aggregate(nil)
	if book.Len() != 0 {
		t.Errorf("Len() = %d, want 0", book.Len())
	}
}

func TestAggregate_ObservationWithoutTickersIgnored(t *testing.T) {
	agg := testAggregator()

	book := agg.Aggregate([]contracts.RawObservation{
		{Text: "nothing to see here, very bullish though", EngagementScore: 900},
	})
	if book.Len() != 0 {
		t.Errorf("Len() = %d, want 0", book.Len())
	}
}

func TestAggregate_MultiTickerObservation(t *testing.T) {
	agg := testAggregator()

	book := agg.Aggregate([]contracts.RawObservation{
		{Text: "rotating $GME into $BTC 🚀", EngagementScore: 10, SourceSubgroup: "cryptocurrency"},
	})

	for _, ticker := range []string{"GME", "BTC"} {
		acc, ok := book.Get(ticker)
		if !ok {
			t.Fatalf("expected %s entry", ticker)
		}
		if acc.Mentions != 1 {
			t.Errorf("%s Mentions = %d, want 1", ticker, acc.Mentions)
		}
		if acc.SentimentSum != 1.0 {
			t.Errorf("%s SentimentSum = %v, want 1.0", ticker, acc.SentimentSum)
		}
	}
}

func TestAggregate_SubgroupLastWriteWins(t *testing.T) {
	agg := testAggregator()

	book := agg.Aggregate([]contracts.RawObservation{
		{Text: "NVDA calls", EngagementScore: 1, SourceSubgroup: "wallstreetbets"},
		{Text: "NVDA to the moon", EngagementScore: 1, SourceSubgroup: "stocks"},
	})

	acc, _ := book.Get("NVDA")
	if acc.Subgroup != "stocks" {
		t.Errorf("Subgroup = %q, want stocks", acc.Subgroup)
	}
}

func TestBook_TickersSorted(t *testing.T) {
	book := NewBook()
	book.GetOrCreate("NVDA")
	book.GetOrCreate("BTC")
	book.GetOrCreate("GME")

	got := book.Tickers()
	want := []string{"BTC", "GME", "NVDA"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tickers() = %v, want %v", got, want)
		}
	}
}

func TestBook_GetOrCreateReturnsSameAccumulator(t *testing.T) {
	book := NewBook()

	a := book.GetOrCreate("BTC")
	a.Mentions++

	b := book.GetOrCreate("BTC")
	if b.Mentions != 1 {
		t.Errorf("expected same accumulator, got Mentions = %d", b.Mentions)
	}
	if book.Len() != 1 {
		t.Errorf("Len() = %d, want 1", book.Len())
	}
}
