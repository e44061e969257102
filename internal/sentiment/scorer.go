package sentiment

import (
	"math"
	"strings"
)

// Scorer turns raw text into a signed polarity score in [-1, 1]
type Scorer struct {
	lexicon *Lexicon
}

// NewScorer creates a scorer over the given lexicon
func NewScorer(lexicon *Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Score returns (bullish - bearish) / (bullish + bearish) rounded to two
// decimals, where each keyword counts once if it appears anywhere in the
// case-folded text. Text with no keyword hits scores exactly 0.
func (s *Scorer) Score(text string) float64 {
	lower := strings.ToLower(text)

	var bull, bear int
	for _, w := range s.lexicon.bullish {
		if strings.Contains(lower, w) {
			bull++
		}
	}
	for _, w := range s.lexicon.bearish {
		if strings.Contains(lower, w) {
			bear++
		}
	}

	total := bull + bear
	if total == 0 {
		return 0.0
	}

	return round2(float64(bull-bear) / float64(total))
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
