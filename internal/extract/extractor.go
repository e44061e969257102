package extract

import (
	"regexp"
	"sort"
)

// Candidate patterns: $-marked symbols of 1-5 letters, and bare uppercase
// tokens of 2-5 letters at word boundaries.
var (
	sigilPattern = regexp.MustCompile(`\$([A-Z]{1,5})\b`)
	barePattern  = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
)

// Extractor turns raw text into validated ticker symbols
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor creates an extractor validating against the given vocabulary
func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract returns all validated tickers in the text, sorted alphabetically
// so callers iterate deterministically. Both candidate passes are unioned;
// no matches yields an empty slice, never an error.
func (e *Extractor) Extract(text string) []string {
	seen := make(map[string]struct{})

	for _, match := range sigilPattern.FindAllStringSubmatch(text, -1) {
		if e.vocab.Contains(match[1]) {
			seen[match[1]] = struct{}{}
		}
	}

	for _, match := range barePattern.FindAllStringSubmatch(text, -1) {
		if e.vocab.Contains(match[1]) {
			seen[match[1]] = struct{}{}
		}
	}

	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	return tickers
}
