package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulselabs/trendpulse/internal/contracts"
)

func rec(ticker string, source contracts.Source, momentum int) contracts.TickerRecord {
	return contracts.TickerRecord{Ticker: ticker, Source: source, Momentum: momentum}
}

func TestMerge_DedupeKeepsHighestMomentum(t *testing.T) {
	r := NewRanker(20)

	merged := r.Merge([]contracts.TickerRecord{
		rec("$BTC", contracts.SourceForum, 40),
		rec("$BTC", contracts.SourceTrend, 60),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, 60, merged[0].Momentum)
	assert.Equal(t, contracts.SourceTrend, merged[0].Source, "trend record should win")
}

func TestMerge_CaseInsensitiveDedupe(t *testing.T) {
	r := NewRanker(20)

	merged := r.Merge([]contracts.TickerRecord{
		rec("$btc", contracts.SourceTrend, 70),
		rec("$BTC", contracts.SourceForum, 50),
	})

	assert.Len(t, merged, 1)
}

func TestMerge_DescendingOrder(t *testing.T) {
	r := NewRanker(20)

	merged := r.Merge([]contracts.TickerRecord{
		rec("$AMD", contracts.SourceForum, 30),
		rec("$NVDA", contracts.SourceForum, 90),
		rec("$GME", contracts.SourceForum, 55),
	})

	for i := 1; i < len(merged); i++ {
		assert.LessOrEqual(t, merged[i].Momentum, merged[i-1].Momentum)
	}
	assert.Equal(t, "$NVDA", merged[0].Ticker)
}

func TestMerge_StableTieBreak(t *testing.T) {
	r := NewRanker(20)

	// Equal momentum keeps encounter order
	merged := r.Merge([]contracts.TickerRecord{
		rec("$AAA", contracts.SourceForum, 50),
		rec("$BBB", contracts.SourceForum, 50),
		rec("$CCC", contracts.SourceForum, 50),
	})

	require.Len(t, merged, 3)
	assert.Equal(t, "$AAA", merged[0].Ticker)
	assert.Equal(t, "$BBB", merged[1].Ticker)
	assert.Equal(t, "$CCC", merged[2].Ticker)
}

func TestMerge_TruncatesToTopN(t *testing.T) {
	r := NewRanker(20)

	var records []contracts.TickerRecord
	for i := 0; i < 30; i++ {
		records = append(records, rec(fmt.Sprintf("$T%02d", i), contracts.SourceForum, i))
	}

	merged := r.Merge(records)
	require.Len(t, merged, 20)
	// Highest momentum survives truncation
	assert.Equal(t, 29, merged[0].Momentum)
}

func TestMerge_EmptyInput(t *testing.T) {
	r := NewRanker(20)

	assert.Empty(t, r.Merge(nil))
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	r := NewRanker(20)

	records := []contracts.TickerRecord{
		rec("$AMD", contracts.SourceForum, 30),
		rec("$NVDA", contracts.SourceForum, 90),
	}

	r.Merge(records)

	assert.Equal(t, "$AMD", records[0].Ticker, "Merge must not mutate its input")
	assert.Equal(t, "$NVDA", records[1].Ticker)
}
