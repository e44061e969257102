package contracts

import (
	"strings"
	"time"
)

// SigilPrefix marks ticker symbols in display form ($NVDA, $BTC)
const SigilPrefix = "$"

// TickerRecord is a scored ticker from one source. Immutable once produced
// by the momentum engine.
type TickerRecord struct {
	Ticker    string  `json:"ticker"` // normalized with sigil prefix
	Source    Source  `json:"source"`
	Momentum  int     `json:"momentum"` // 0-100
	Mentions  int     `json:"mentions"`
	Sentiment float64 `json:"sentiment"` // -1..1
	Subgroup  string  `json:"subreddit,omitempty"`
	Posts     int     `json:"posts"`
}

// NormalizedTicker returns the upper-cased sigil-prefixed ticker used for
// deduplication
func (r TickerRecord) NormalizedTicker() string {
	return strings.ToUpper(r.Ticker)
}

// NormalizeTicker prefixes a symbol with the sigil exactly once
func NormalizeTicker(symbol string) string {
	return SigilPrefix + strings.TrimPrefix(symbol, SigilPrefix)
}

// RankedResult is the ordered, deduplicated output of a scan: strictly
// descending by momentum, no duplicate tickers (case-insensitively),
// truncated to the configured top-N
type RankedResult struct {
	Trends  []TickerRecord `json:"trends"`
	Updated time.Time      `json:"updated"`
	Sources SourceCounts   `json:"sources"`
}

// SourceCounts reports how many distinct tickers each source contributed
// before merging
type SourceCounts struct {
	Reddit  int `json:"reddit"`
	Twitter int `json:"twitter"`
}
