package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/extract"
	"github.com/pulselabs/trendpulse/internal/pipeline"
	"github.com/pulselabs/trendpulse/internal/sentiment"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

type fakeSource struct {
	name string
	obs  []contracts.RawObservation
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchObservations(ctx context.Context) ([]contracts.RawObservation, error) {
	return f.obs, f.err
}

func newTestService(forum, trend Source) *Service {
	log := logger.NewNop()
	pipe := pipeline.New(extract.DefaultVocabulary(), sentiment.DefaultLexicon(), 20, log)
	return NewService(forum, trend, pipe, nil, nil, nil, log)
}

func TestRunScoresBothSources(t *testing.T) {
	forum := &fakeSource{
		name: "reddit",
		obs: []contracts.RawObservation{
			{Text: "$NVDA to the moon", EngagementScore: 100, SourceSubgroup: "wallstreetbets"},
			{Text: "NVDA calls printing", EngagementScore: 50, SourceSubgroup: "wallstreetbets"},
		},
	}
	trend := &fakeSource{
		name: "twitter",
		obs: []contracts.RawObservation{
			{Text: "$BTC", EngagementScore: 1, SourceSubgroup: "united-states"},
		},
	}

	svc := newTestService(forum, trend)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Trends) != 2 {
		t.Fatalf("expected 2 ranked tickers, got %d", len(result.Trends))
	}
	if result.Sources.Reddit != 1 || result.Sources.Twitter != 1 {
		t.Errorf("unexpected source counts: %+v", result.Sources)
	}
}

func TestRunToleratesSingleSourceFailure(t *testing.T) {
	forum := &fakeSource{
		name: "reddit",
		obs: []contracts.RawObservation{
			{Text: "$TSLA dump incoming", EngagementScore: 10, SourceSubgroup: "wallstreetbets"},
		},
	}
	trend := &fakeSource{name: "twitter", err: errors.New("blocked")}

	svc := newTestService(forum, trend)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Trends) != 1 {
		t.Fatalf("expected 1 ranked ticker, got %d", len(result.Trends))
	}
	if result.Trends[0].Ticker != "$TSLA" {
		t.Errorf("expected $TSLA, got %s", result.Trends[0].Ticker)
	}
}

func TestRunFailsWhenAllSourcesFail(t *testing.T) {
	forum := &fakeSource{name: "reddit", err: errors.New("auth failed")}
	trend := &fakeSource{name: "twitter", err: errors.New("blocked")}

	svc := newTestService(forum, trend)

	if _, err := svc.Run(context.Background()); err == nil {
		t.Error("expected error when both sources fail")
	}
}

func TestOnResultListener(t *testing.T) {
	forum := &fakeSource{
		name: "reddit",
		obs: []contracts.RawObservation{
			{Text: "$AMD buy the dip", EngagementScore: 5, SourceSubgroup: "wallstreetbets"},
		},
	}
	trend := &fakeSource{name: "twitter"}

	svc := newTestService(forum, trend)

	var got *contracts.RankedResult
	svc.OnResult(func(r *contracts.RankedResult) { got = r })

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != result {
		t.Error("listener did not receive the scan result")
	}
}

func TestResultsReturnsLastScan(t *testing.T) {
	forum := &fakeSource{
		name: "reddit",
		obs: []contracts.RawObservation{
			{Text: "$GME squeeze", EngagementScore: 500, SourceSubgroup: "wallstreetbets"},
		},
	}
	trend := &fakeSource{name: "twitter"}

	svc := newTestService(forum, trend)

	first, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Break both sources: Results must serve the in-process copy
	forum.err = errors.New("down")
	forum.obs = nil
	trend.err = errors.New("down")

	cached, err := svc.Results(context.Background())
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if cached != first {
		t.Error("expected the last scan result to be served")
	}
}
