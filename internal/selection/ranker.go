package selection

import (
	"sort"

	"github.com/pulselabs/trendpulse/internal/contracts"
)

// DefaultTopN is how many records a merged result keeps
const DefaultTopN = 20

// Ranker merges per-source records into one ranked, deduplicated list
type Ranker struct {
	topN int
}

// NewRanker creates a ranker truncating to the given top-N
func NewRanker(topN int) *Ranker {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Ranker{topN: topN}
}

// Merge concatenates per-source records, stable-sorts them descending by
// momentum, drops case-insensitive duplicate tickers keeping the first
// occurrence, and truncates to top-N. Because the sort is stable and the
// first occurrence wins, whichever source scored a ticker highest owns its
// displayed record; lower-momentum duplicates are silently dropped.
func (r *Ranker) Merge(records []contracts.TickerRecord) []contracts.TickerRecord {
	merged := make([]contracts.TickerRecord, len(records))
	copy(merged, records)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Momentum > merged[j].Momentum
	})

	seen := make(map[string]struct{}, len(merged))
	unique := make([]contracts.TickerRecord, 0, len(merged))
	for _, rec := range merged {
		key := rec.NormalizedTicker()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)

		if len(unique) == r.topN {
			break
		}
	}

	return unique
}
