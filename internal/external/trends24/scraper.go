package trends24

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/pkg/config"
	"github.com/pulselabs/trendpulse/pkg/httputil"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// Browser-like UA, the site blocks default Go clients
const scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper collects trending topics from trends24.in
type Scraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.TrendsConfig
}

// NewScraper creates a trends24 scraper
func NewScraper(cfg config.TrendsConfig, httpClient *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// Name identifies this source in logs and scan results
func (s *Scraper) Name() string {
	return string(contracts.SourceTrend)
}

// FetchObservations scrapes the most recent trend list for the configured
// region. Each trend title becomes one observation with unit engagement,
// since trends24 exposes no per-topic volume on the list page. Titles are
// upper-cased so mixed-case topics like "Doge" still match ticker symbols.
func (s *Scraper) FetchObservations(ctx context.Context) ([]contracts.RawObservation, error) {
	trends, err := s.FetchTrends(ctx)
	if err != nil {
		return nil, err
	}

	observations := make([]contracts.RawObservation, 0, len(trends))
	for _, trend := range trends {
		observations = append(observations, contracts.RawObservation{
			Text:            strings.ToUpper(trend),
			EngagementScore: 1,
			SourceSubgroup:  s.cfg.Region,
		})
	}
	return observations, nil
}

// FetchTrends returns up to MaxTrends trend titles from the newest card
func (s *Scraper) FetchTrends(ctx context.Context) ([]string, error) {
	pageURL := fmt.Sprintf("%s/%s/", strings.TrimSuffix(s.cfg.BaseURL, "/"), s.cfg.Region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends page failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trends page failed: %w", err)
	}

	var trends []string
	seen := make(map[string]bool)

	// The first trend-card is the most recent hourly snapshot
	doc.Find(".trend-card").First().Find(".trend-card__list li a").Each(func(_ int, sel *goquery.Selection) {
		if len(trends) >= s.cfg.MaxTrends {
			return
		}
		title := strings.TrimSpace(sel.Text())
		if title == "" || seen[title] {
			return
		}
		seen[title] = true
		trends = append(trends, title)
	})

	if len(trends) == 0 {
		return nil, fmt.Errorf("no trends found on page, layout may have changed")
	}

	s.logger.WithFields(map[string]interface{}{
		"region": s.cfg.Region,
		"trends": len(trends),
	}).Info("Fetched trending topics")

	return trends, nil
}
