package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pulselabs/trendpulse/internal/contracts"
)

// listing is the Reddit listing envelope
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// post carries the fields we read from a submission
type post struct {
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Score     int    `json:"score"`
	Subreddit string `json:"subreddit"`
	Stickied  bool   `json:"stickied"`
}

// FetchObservations pulls hot and rising posts from every configured
// subreddit and converts them to raw observations. A subreddit that fails
// is logged and skipped so one outage does not empty the whole scan.
func (c *Client) FetchObservations(ctx context.Context) ([]contracts.RawObservation, error) {
	perListing := c.cfg.PostsPerSub / 2
	if perListing < 1 {
		perListing = 1
	}

	var observations []contracts.RawObservation
	var failed int

	for _, sub := range c.cfg.Subreddits {
		for _, sort := range []string{"hot", "rising"} {
			posts, err := c.fetchListing(ctx, sub, sort, perListing)
			if err != nil {
				failed++
				c.logger.WithFields(map[string]interface{}{
					"subreddit": sub,
					"sort":      sort,
					"error":     err.Error(),
				}).Warn("Failed to fetch subreddit listing")
				continue
			}

			for _, p := range posts {
				if p.Stickied {
					continue
				}
				obs := contracts.RawObservation{
					Text:            joinText(p.Title, p.Selftext),
					EngagementScore: float64(p.Score),
					SourceSubgroup:  p.Subreddit,
				}
				if obs.SourceSubgroup == "" {
					obs.SourceSubgroup = sub
				}
				observations = append(observations, obs)
			}
		}
	}

	if len(observations) == 0 && failed > 0 {
		return nil, fmt.Errorf("all subreddit fetches failed (%d listings)", failed)
	}

	c.logger.WithFields(map[string]interface{}{
		"posts":      len(observations),
		"subreddits": len(c.cfg.Subreddits),
	}).Info("Fetched Reddit observations")

	return observations, nil
}

// fetchListing fetches a single sorted listing for a subreddit
func (c *Client) fetchListing(ctx context.Context, subreddit, sort string, limit int) ([]post, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("raw_json", "1")

	var result listing
	path := fmt.Sprintf("/r/%s/%s", subreddit, sort)
	if err := c.getJSON(ctx, path, params, &result); err != nil {
		return nil, err
	}

	posts := make([]post, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

func joinText(title, selftext string) string {
	if selftext == "" {
		return title
	}
	return strings.TrimSpace(title + " " + selftext)
}
