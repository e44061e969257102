package momentum

import (
	"testing"

	"github.com/pulselabs/trendpulse/internal/aggregate"
	"github.com/pulselabs/trendpulse/internal/contracts"
)

func forumAcc(mentions int, engagement []float64, sentimentSum float64) *aggregate.Accumulator {
	return &aggregate.Accumulator{
		Mentions:         mentions,
		SentimentSum:     sentimentSum,
		EngagementScores: engagement,
		Posts:            mentions,
		Subgroup:         "wallstreetbets",
	}
}

func TestForumRecord_WorkedExample(t *testing.T) {
	// mentions=2, avg engagement=75, avg sentiment=0:
	// min(40, log10(2)*20) + min(30, log10(75)*10) + (0+0.5)*20
	// = 6.02 + 18.75 + 10 = 34.77 -> floor 34
	s := NewForumStrategy()

	rec := s.Record("NVDA", forumAcc(2, []float64{100, 50}, 0))

	if rec.Momentum != 34 {
		t.Errorf("Momentum = %d, want 34", rec.Momentum)
	}
	if rec.Ticker != "$NVDA" {
		t.Errorf("Ticker = %q, want $NVDA", rec.Ticker)
	}
	if rec.Source != contracts.SourceForum {
		t.Errorf("Source = %q, want %q", rec.Source, contracts.SourceForum)
	}
	if rec.Sentiment != 0.0 {
		t.Errorf("Sentiment = %v, want 0.0", rec.Sentiment)
	}
	if rec.Mentions != 2 || rec.Posts != 2 {
		t.Errorf("Mentions/Posts = %d/%d, want 2/2", rec.Mentions, rec.Posts)
	}
}

func TestForumRecord_MonotonicInMentions(t *testing.T) {
	s := NewForumStrategy()

	prev := -1
	for mentions := 1; mentions <= 200; mentions++ {
		// Hold engagement and |sentiment| fixed
		acc := forumAcc(mentions, []float64{50}, 0.5*float64(mentions))
		rec := s.Record("BTC", acc)

		if rec.Momentum < prev {
			t.Fatalf("momentum decreased at mentions=%d: %d < %d", mentions, rec.Momentum, prev)
		}
		if rec.Momentum < 0 || rec.Momentum > 100 {
			t.Fatalf("momentum out of range at mentions=%d: %d", mentions, rec.Momentum)
		}
		prev = rec.Momentum
	}
}

func TestForumRecord_SentimentMagnitudeSymmetric(t *testing.T) {
	s := NewForumStrategy()

	bullish := s.Record("GME", forumAcc(5, []float64{10}, 5))  // avg +1.0
	bearish := s.Record("GME", forumAcc(5, []float64{10}, -5)) // avg -1.0

	if bullish.Momentum != bearish.Momentum {
		t.Errorf("momentum should ignore polarity direction: %d vs %d",
			bullish.Momentum, bearish.Momentum)
	}
}

func TestForumRecord_ComponentCaps(t *testing.T) {
	s := NewForumStrategy()

	// Huge everything still lands inside [0, 100]
	scores := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		scores = append(scores, 1e9)
	}
	rec := s.Record("BTC", forumAcc(1000000, scores, 1000000))

	// 40 + 30 + 30 = 100 is the ceiling
	if rec.Momentum != 100 {
		t.Errorf("Momentum = %d, want 100", rec.Momentum)
	}
}

func TestForumRecord_ZeroMentions(t *testing.T) {
	s := NewForumStrategy()

	rec := s.Record("BTC", &aggregate.Accumulator{})
	// 0 + 0 + (0+0.5)*20 = 10
	if rec.Momentum != 10 {
		t.Errorf("Momentum = %d, want 10", rec.Momentum)
	}
}

func TestTrendRecord(t *testing.T) {
	tests := []struct {
		name        string
		mentions    int
		alsoOnForum bool
		want        int
	}{
		{"single mention", 1, false, 40},
		{"three mentions", 3, false, 60},
		{"capped at 80", 10, false, 80},
		{"forum boost", 3, true, 75},
		{"boost capped at 95", 10, true, 95},
		{"boost near cap", 7, true, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTrendStrategy(func(string) bool { return tt.alsoOnForum })

			rec := s.Record("BTC", &aggregate.Accumulator{Mentions: tt.mentions})
			if rec.Momentum != tt.want {
				t.Errorf("Momentum = %d, want %d", rec.Momentum, tt.want)
			}
			if rec.Sentiment != 0.1 {
				t.Errorf("Sentiment = %v, want fixed 0.1", rec.Sentiment)
			}
			if rec.Source != contracts.SourceTrend {
				t.Errorf("Source = %q, want %q", rec.Source, contracts.SourceTrend)
			}
			if rec.Posts != 0 {
				t.Errorf("Posts = %d, want 0", rec.Posts)
			}
		})
	}
}

func TestTrendStrategy_NilPresenceCheck(t *testing.T) {
	s := NewTrendStrategy(nil)

	rec := s.Record("ETH", &aggregate.Accumulator{Mentions: 2})
	if rec.Momentum != 50 {
		t.Errorf("Momentum = %d, want 50 (no boost)", rec.Momentum)
	}
}

func TestScoreBook_DeterministicOrder(t *testing.T) {
	book := aggregate.NewBook()
	for _, ticker := range []string{"NVDA", "BTC", "ETH", "GME"} {
		acc := book.GetOrCreate(ticker)
		acc.Mentions = 1
		acc.EngagementScores = []float64{1}
	}

	s := NewForumStrategy()

	first := ScoreBook(s, book)
	for i := 0; i < 10; i++ {
		again := ScoreBook(s, book)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("ScoreBook order not deterministic at %d: %v vs %v", j, first[j], again[j])
			}
		}
	}

	want := []string{"$BTC", "$ETH", "$GME", "$NVDA"}
	for i, rec := range first {
		if rec.Ticker != want[i] {
			t.Errorf("record %d ticker = %q, want %q", i, rec.Ticker, want[i])
		}
	}
}
