// Package engine converts long-form text into an ordered sequence of
// platform-constrained posts (a "threadstorm"). The pipeline is pure and
// deterministic: it performs no I/O, calls no external services, and the
// same Draft always produces the same Threadstorm.
package engine

// BoundaryRank orders candidate split points from weakest to strongest.
// The packer prefers cutting at the highest-ranked boundary available.
type BoundaryRank int

const (
	BoundaryWord BoundaryRank = iota
	BoundaryClause
	BoundarySentence
	BoundaryParagraph
)

// String returns a human-readable name for the rank.
func (r BoundaryRank) String() string {
	switch r {
	case BoundaryParagraph:
		return "paragraph"
	case BoundarySentence:
		return "sentence"
	case BoundaryClause:
		return "clause"
	default:
		return "word"
	}
}

// Segment is a candidate unit of text. Rank describes the boundary that
// follows the segment, not the segment itself: a segment with
// BoundarySentence rank ends a sentence.
type Segment struct {
	Text string
	Rank BoundaryRank
}

// Draft is the immutable input to Format. The engine never mutates it.
type Draft struct {
	RawContent string
	Options    FormattingOptions
}

// Post is one platform-constrained unit of text within a Threadstorm.
type Post struct {
	Index              int    `json:"index"`
	Text               string `json:"text"`
	CharCount          int    `json:"char_count"`
	HasImageSuggestion bool   `json:"has_image_suggestion"`
	ImageRationale     string `json:"image_rationale,omitempty"`
}

// Threadstorm is the sole output artifact: the complete ordered sequence of
// posts produced from one Draft, plus quality metadata. It is immutable once
// returned; callers serialize and persist it as they see fit.
type Threadstorm struct {
	Posts           []Post   `json:"posts"`
	TotalPosts      int      `json:"total_posts"`
	TotalCharacters int      `json:"total_characters"`
	EngagementScore float64  `json:"engagement_score"`
	Suggestions     []string `json:"suggestions,omitempty"`
}
