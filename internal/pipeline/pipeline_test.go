package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/extract"
	"github.com/pulselabs/trendpulse/internal/sentiment"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

func testPipeline() *Pipeline {
	vocab := extract.NewVocabulary([]string{"NVDA", "BTC", "ETH", "GME"})
	p := New(vocab, sentiment.DefaultLexicon(), 20, logger.NewNop())
	return p.WithClock(func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	})
}

func forumObs() []contracts.RawObservation {
	return []contracts.RawObservation{
		{Text: "$NVDA moon moon", EngagementScore: 100, SourceSubgroup: "wallstreetbets"},
		{Text: "NVDA puts", EngagementScore: 50, SourceSubgroup: "wallstreetbets"},
		{Text: "BTC pump 🚀", EngagementScore: 200, SourceSubgroup: "cryptocurrency"},
	}
}

func trendObs() []contracts.RawObservation {
	return []contracts.RawObservation{
		contracts.NewObservation("$BTC hits new high", "united-states"),
		contracts.NewObservation("BTC everywhere", "united-states"),
		contracts.NewObservation("ETH merge anniversary", "united-states"),
	}
}

func TestAggregateAndScore(t *testing.T) {
	p := testPipeline()

	result := p.AggregateAndScore(forumObs(), trendObs())

	if result.Sources.Reddit != 2 {
		t.Errorf("Sources.Reddit = %d, want 2", result.Sources.Reddit)
	}
	if result.Sources.Twitter != 2 {
		t.Errorf("Sources.Twitter = %d, want 2", result.Sources.Twitter)
	}

	byTicker := make(map[string]contracts.TickerRecord)
	for _, rec := range result.Trends {
		if _, dup := byTicker[rec.Ticker]; dup {
			t.Fatalf("duplicate ticker %s in ranked result", rec.Ticker)
		}
		byTicker[rec.Ticker] = rec
	}

	// BTC appears on both sources: trend record (2 mentions, forum boost:
	// min(80, 30+20)=50, +15=65) beats the single-mention forum record.
	btc, ok := byTicker["$BTC"]
	if !ok {
		t.Fatal("expected $BTC in result")
	}
	if btc.Source != contracts.SourceTrend {
		t.Errorf("$BTC source = %q, want trend to win merge", btc.Source)
	}
	if btc.Momentum != 65 {
		t.Errorf("$BTC momentum = %d, want 65", btc.Momentum)
	}

	// NVDA: forum only, worked example lands on 34
	nvda, ok := byTicker["$NVDA"]
	if !ok {
		t.Fatal("expected $NVDA in result")
	}
	if nvda.Momentum != 34 {
		t.Errorf("$NVDA momentum = %d, want 34", nvda.Momentum)
	}

	// ETH: trend only, single mention, no boost
	eth, ok := byTicker["$ETH"]
	if !ok {
		t.Fatal("expected $ETH in result")
	}
	if eth.Momentum != 40 {
		t.Errorf("$ETH momentum = %d, want 40", eth.Momentum)
	}
	if eth.Sentiment != 0.1 {
		t.Errorf("$ETH sentiment = %v, want 0.1", eth.Sentiment)
	}

	// Descending by momentum
	for i := 1; i < len(result.Trends); i++ {
		if result.Trends[i].Momentum > result.Trends[i-1].Momentum {
			t.Fatalf("result not descending: %v", result.Trends)
		}
	}
}

func TestAggregateAndScore_Idempotent(t *testing.T) {
	p := testPipeline()

	first := p.AggregateAndScore(forumObs(), trendObs())
	for i := 0; i < 5; i++ {
		again := p.AggregateAndScore(forumObs(), trendObs())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestAggregateAndScore_EmptyInputs(t *testing.T) {
	p := testPipeline()

	result := p.AggregateAndScore(nil, nil)

	if len(result.Trends) != 0 {
		t.Errorf("Trends = %v, want empty", result.Trends)
	}
	if result.Sources.Reddit != 0 || result.Sources.Twitter != 0 {
		t.Errorf("Sources = %+v, want zeros", result.Sources)
	}
}

func TestAggregateAndScore_SigilPrefixExactlyOnce(t *testing.T) {
	p := testPipeline()

	result := p.AggregateAndScore(forumObs(), trendObs())
	for _, rec := range result.Trends {
		if len(rec.Ticker) < 2 || rec.Ticker[0] != '$' || rec.Ticker[1] == '$' {
			t.Errorf("ticker %q not sigil-prefixed exactly once", rec.Ticker)
		}
	}
}
