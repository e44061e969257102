package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/pulselabs/trendpulse/internal/alerting"
	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/pipeline"
	"github.com/pulselabs/trendpulse/internal/storage"
	"github.com/pulselabs/trendpulse/pkg/logger"
	"github.com/pulselabs/trendpulse/pkg/redis"
)

// Source supplies raw observations from one social platform
type Source interface {
	Name() string
	FetchObservations(ctx context.Context) ([]contracts.RawObservation, error)
}

// Service runs full scans: fetch, score, cache, persist, alert
type Service struct {
	forum      Source
	trend      Source
	pipeline   *pipeline.Pipeline
	cache      *redis.Cache
	repo       *storage.Repository
	dispatcher *alerting.Dispatcher
	logger     *logger.Logger

	mu        sync.RWMutex
	listeners []func(*contracts.RankedResult)
	last      *contracts.RankedResult
}

// NewService creates a scan service. Cache, repo and dispatcher are
// optional; a nil value disables that side effect.
func NewService(forum, trend Source, pipe *pipeline.Pipeline, cache *redis.Cache, repo *storage.Repository, dispatcher *alerting.Dispatcher, log *logger.Logger) *Service {
	return &Service{
		forum:      forum,
		trend:      trend,
		pipeline:   pipe,
		cache:      cache,
		repo:       repo,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// OnResult registers a callback invoked after every successful scan
func (s *Service) OnResult(fn func(*contracts.RankedResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Run executes one full scan. A single source failing is tolerated and
// logged; the scan errors only when both sources come back empty-handed.
func (s *Service) Run(ctx context.Context) (*contracts.RankedResult, error) {
	var wg sync.WaitGroup
	var forumObs, trendObs []contracts.RawObservation
	var forumErr, trendErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		forumObs, forumErr = s.fetchSource(ctx, s.forum)
	}()
	go func() {
		defer wg.Done()
		trendObs, trendErr = s.fetchSource(ctx, s.trend)
	}()
	wg.Wait()

	if forumErr != nil && trendErr != nil {
		return nil, fmt.Errorf("all sources failed: forum: %v, trend: %v", forumErr, trendErr)
	}

	result := s.pipeline.AggregateAndScore(forumObs, trendObs)

	s.cacheResult(ctx, result)
	s.persistResult(ctx, result)
	s.dispatchAlerts(ctx, result)

	s.mu.Lock()
	s.last = result
	listeners := make([]func(*contracts.RankedResult), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(result)
	}

	s.logger.WithFields(map[string]interface{}{
		"tickers":       len(result.Trends),
		"reddit_count":  result.Sources.Reddit,
		"twitter_count": result.Sources.Twitter,
	}).Info("Scan completed")

	return result, nil
}

// Results returns the freshest ranked result available: the cache first,
// then the last in-process scan, then the latest stored snapshot, and as
// a last resort a fresh scan.
func (s *Service) Results(ctx context.Context) (*contracts.RankedResult, error) {
	if cached := s.cachedResult(ctx); cached != nil {
		return cached, nil
	}

	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		return last, nil
	}

	if s.repo != nil {
		stored, err := s.repo.GetLatestSnapshot(ctx)
		if err == nil {
			return stored, nil
		}
		if err != storage.ErrNoSnapshot {
			s.logger.WithError(err).Warn("Failed to load stored snapshot")
		}
	}

	return s.Run(ctx)
}

// fetchSource pulls fresh observations from a source. Successful batches
// are cached; on failure the last good batch is served so a short outage
// does not drop the source from the scan entirely.
func (s *Service) fetchSource(ctx context.Context, src Source) ([]contracts.RawObservation, error) {
	obs, err := src.FetchObservations(ctx)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"source": src.Name(),
			"error":  err.Error(),
		}).Warn("Source fetch failed")

		if stale := s.staleObservations(ctx, src.Name()); stale != nil {
			s.logger.WithFields(map[string]interface{}{
				"source": src.Name(),
				"posts":  len(stale),
			}).Info("Serving cached observations for failed source")
			return stale, nil
		}
		return nil, err
	}

	if s.cache != nil && len(obs) > 0 {
		if err := s.cache.Set(ctx, redis.SourceKey(src.Name()), obs, redis.TTLSource); err != nil {
			s.logger.WithError(err).Warn("Failed to cache source observations")
		}
	}
	return obs, nil
}

func (s *Service) staleObservations(ctx context.Context, source string) []contracts.RawObservation {
	if s.cache == nil {
		return nil
	}

	var obs []contracts.RawObservation
	found, err := s.cache.Get(ctx, redis.SourceKey(source), &obs)
	if err != nil || !found {
		return nil
	}
	return obs
}

func (s *Service) cacheResult(ctx context.Context, result *contracts.RankedResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, redis.ScanKey(), result, redis.TTLScan); err != nil {
		s.logger.WithError(err).Warn("Failed to cache scan result")
	}
}

func (s *Service) cachedResult(ctx context.Context) *contracts.RankedResult {
	if s.cache == nil {
		return nil
	}

	var result contracts.RankedResult
	found, err := s.cache.Get(ctx, redis.ScanKey(), &result)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to decode cached scan result")
		return nil
	}
	if !found {
		return nil
	}
	return &result
}

func (s *Service) persistResult(ctx context.Context, result *contracts.RankedResult) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveSnapshot(ctx, result); err != nil {
		s.logger.WithError(err).Warn("Failed to persist scan snapshot")
	}
}

// dispatchAlerts fires notifications for every ranked ticker whose
// classified signal clears the alert bar
func (s *Service) dispatchAlerts(ctx context.Context, result *contracts.RankedResult) {
	if s.dispatcher == nil {
		return
	}

	for _, record := range result.Trends {
		decision := alerting.Decide(record.Momentum, record.Sentiment, "")
		if !decision.ShouldFire {
			continue
		}

		alert := alerting.Alert{
			Ticker:    record.NormalizedTicker(),
			Signal:    decision.Signal,
			Momentum:  record.Momentum,
			Sentiment: record.Sentiment,
			Source:    string(record.Source),
		}

		outcomes := s.dispatcher.Dispatch(ctx, alert, nil)

		if s.repo != nil {
			err := s.repo.SaveAlert(ctx, &storage.AlertRecord{
				Ticker:    alert.Ticker,
				Signal:    alert.Signal,
				Momentum:  alert.Momentum,
				Sentiment: alert.Sentiment,
				Channels:  outcomes,
			})
			if err != nil {
				s.logger.WithError(err).Warn("Failed to record alert")
			}
		}
	}
}
