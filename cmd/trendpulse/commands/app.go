package commands

import (
	"fmt"

	"github.com/pulselabs/trendpulse/internal/alerting"
	"github.com/pulselabs/trendpulse/internal/extract"
	"github.com/pulselabs/trendpulse/internal/external/reddit"
	"github.com/pulselabs/trendpulse/internal/external/trends24"
	"github.com/pulselabs/trendpulse/internal/pipeline"
	"github.com/pulselabs/trendpulse/internal/scan"
	"github.com/pulselabs/trendpulse/internal/sentiment"
	"github.com/pulselabs/trendpulse/internal/storage"
	"github.com/pulselabs/trendpulse/pkg/config"
	"github.com/pulselabs/trendpulse/pkg/database"
	"github.com/pulselabs/trendpulse/pkg/httputil"
	"github.com/pulselabs/trendpulse/pkg/logger"
	"github.com/pulselabs/trendpulse/pkg/redis"
)

// app bundles the wired components shared by the CLI commands
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *database.DB
	redis      *redis.Client
	repo       *storage.Repository
	dispatcher *alerting.Dispatcher
	scanner    *scan.Service
}

// newApp loads configuration and wires the full service graph. Database
// and Redis are optional; when disabled the scanner runs without
// persistence or caching.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	a := &app{cfg: cfg, log: log}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = redisClient

	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		a.repo = storage.NewRepository(db.Pool)
	}

	// One HTTP client per upstream so rate limits stay independent
	redditHTTP := httputil.New(log).WithUserAgent(cfg.Reddit.UserAgent)
	trendsHTTP := httputil.New(log)
	discordHTTP := httputil.New(log)
	resendHTTP := httputil.New(log)

	var cache *redis.Cache
	if redisClient.Enabled() {
		cache = redis.NewCache(redisClient, "trendpulse")

		limiter := redis.NewRateLimiter(redisClient, "trendpulse")
		redditHTTP.WithRateLimiter(limiter, redis.RedditRateLimit)
		trendsHTTP.WithRateLimiter(limiter, redis.TrendsRateLimit)
		discordHTTP.WithRateLimiter(limiter, redis.DiscordRateLimit)
		resendHTTP.WithRateLimiter(limiter, redis.ResendRateLimit)
	}

	redditClient := reddit.NewClient(cfg.Reddit, redditHTTP, log)
	trendsScraper := trends24.NewScraper(cfg.Trends, trendsHTTP, log)

	a.dispatcher = alerting.NewDispatcher(log,
		alerting.NewDiscordNotifier(cfg.Alerts.DiscordWebhookURL, discordHTTP, log),
		alerting.NewEmailNotifier(cfg.Alerts, resendHTTP, log),
	)

	pipe := pipeline.New(extract.DefaultVocabulary(), sentiment.DefaultLexicon(), cfg.Scan.TopN, log)

	a.scanner = scan.NewService(redditClient, trendsScraper, pipe, cache, a.repo, a.dispatcher, log)

	return a, nil
}

// close releases database and redis connections
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
