package sentiment

// Lexicon holds the fixed keyword polarity sets. Matching is substring
// containment over case-folded text, so a keyword inside a larger word still
// counts.
type Lexicon struct {
	bullish []string
	bearish []string
}

// NewLexicon builds a lexicon from explicit keyword sets
func NewLexicon(bullish, bearish []string) *Lexicon {
	return &Lexicon{
		bullish: append([]string(nil), bullish...),
		bearish: append([]string(nil), bearish...),
	}
}

// DefaultLexicon returns the built-in trading slang keyword sets
func DefaultLexicon() *Lexicon {
	return NewLexicon(
		[]string{
			"moon", "pump", "bullish", "buy", "calls", "long", "squeeze",
			"rocket", "tendies", "diamond", "🚀", "📈", "💎",
		},
		[]string{
			"dump", "crash", "bearish", "sell", "puts", "short", "rekt",
			"rug", "📉", "💀", "🐻",
		},
	)
}
