package contracts

// Source identifies which upstream feed produced a record
type Source string

const (
	// SourceForum is the forum feed (Reddit)
	SourceForum Source = "reddit"

	// SourceTrend is the trend feed (X/Twitter trends via trends24.in)
	SourceTrend Source = "twitter"
)

// RawObservation is a single piece of raw text from a source, with an
// optional engagement score (post upvotes, defaults to 1) and the subgroup
// it came from (subreddit name, trend region)
type RawObservation struct {
	Text            string  `json:"text"`
	EngagementScore float64 `json:"engagement_score"`
	SourceSubgroup  string  `json:"source_subgroup"`
}

// NewObservation builds a RawObservation with the default engagement score
func NewObservation(text, subgroup string) RawObservation {
	return RawObservation{
		Text:            text,
		EngagementScore: 1,
		SourceSubgroup:  subgroup,
	}
}
