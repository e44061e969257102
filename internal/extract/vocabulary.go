package extract

// Vocabulary is an immutable set of known ticker symbols. Candidates not in
// the vocabulary are discarded, which keeps common uppercase words (CEO, USA,
// IMO) from being misread as tickers.
type Vocabulary struct {
	symbols map[string]struct{}
}

// NewVocabulary builds a vocabulary from a list of symbols. Symbols are
// matched case-sensitively; callers are expected to pass them upper-cased.
func NewVocabulary(symbols []string) *Vocabulary {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	return &Vocabulary{symbols: set}
}

// Contains reports whether the symbol is a known ticker
func (v *Vocabulary) Contains(symbol string) bool {
	_, ok := v.symbols[symbol]
	return ok
}

// Len returns the number of known symbols
func (v *Vocabulary) Len() int {
	return len(v.symbols)
}

// DefaultVocabulary returns the built-in ticker set covering large-cap and
// meme equities plus major crypto assets
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary([]string{
		// Stocks
		"NVDA", "TSLA", "AMD", "AAPL", "MSFT", "GOOGL", "AMZN", "META",
		"GME", "AMC", "PLTR", "SOFI", "HOOD", "COIN", "MSTR", "SPY", "QQQ",
		"SMCI", "ARM", "AVGO", "MU", "INTC", "BA", "DIS", "NFLX", "PYPL",
		// Crypto
		"BTC", "ETH", "SOL", "DOGE", "XRP", "ADA", "DOT", "AVAX", "MATIC",
		"LINK", "SHIB", "PEPE", "BONK", "WIF", "ARB", "OP", "SUI", "APT",
	})
}
