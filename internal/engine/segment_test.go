package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentize(t *testing.T) {
	t.Run("one segment per word in order", func(t *testing.T) {
		segments := Segmentize("one two three")
		require.Len(t, segments, 3)

		var words []string
		for _, s := range segments {
			words = append(words, s.Text)
		}
		assert.Equal(t, []string{"one", "two", "three"}, words)
	})

	t.Run("sentence boundaries ranked above words", func(t *testing.T) {
		segments := Segmentize("It works. Ship it now")
		assert.Equal(t, BoundarySentence, segments[1].Rank) // "works."
		assert.Equal(t, BoundaryWord, segments[2].Rank)     // "Ship"
	})

	t.Run("question and exclamation end sentences", func(t *testing.T) {
		segments := Segmentize("Really? Yes! And more words")
		assert.Equal(t, BoundarySentence, segments[0].Rank)
		assert.Equal(t, BoundarySentence, segments[1].Rank)
	})

	t.Run("commas and semicolons are clause boundaries", func(t *testing.T) {
		segments := Segmentize("first part, second part; third part")
		assert.Equal(t, BoundaryClause, segments[1].Rank) // "part,"
		assert.Equal(t, BoundaryClause, segments[3].Rank) // "part;"
	})

	t.Run("conjunction starts a clause", func(t *testing.T) {
		segments := Segmentize("we tried hard but it failed anyway")
		assert.Equal(t, BoundaryClause, segments[2].Rank) // "hard" before "but"
	})

	t.Run("abbreviations do not end sentences", func(t *testing.T) {
		segments := Segmentize("Dr. Smith and Mr. Jones met today")
		assert.Equal(t, BoundaryWord, segments[0].Rank) // "Dr."
		assert.Equal(t, BoundaryClause, segments[1].Rank)
		assert.Equal(t, BoundaryWord, segments[3].Rank) // "Mr."
	})

	t.Run("single-letter initials do not end sentences", func(t *testing.T) {
		segments := Segmentize("J. Smith wrote the paper here")
		assert.Equal(t, BoundaryWord, segments[0].Rank)
	})

	t.Run("paragraph boundary outranks everything", func(t *testing.T) {
		segments := Segmentize("end of para.\n\nnext para")
		assert.Equal(t, BoundaryParagraph, segments[2].Rank) // "para."
		assert.Equal(t, BoundaryParagraph, segments[4].Rank) // final word
	})

	t.Run("closing quotes do not hide sentence ends", func(t *testing.T) {
		segments := Segmentize(`he said "done." and left quietly`)
		assert.Equal(t, BoundarySentence, segments[2].Rank) // `"done."`
	})
}

func TestBoundaryRankString(t *testing.T) {
	assert.Equal(t, "paragraph", BoundaryParagraph.String())
	assert.Equal(t, "sentence", BoundarySentence.String())
	assert.Equal(t, "clause", BoundaryClause.String())
	assert.Equal(t, "word", BoundaryWord.String())
}

func BenchmarkSegmentize(b *testing.B) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	normalized, _ := Normalize(text)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Segmentize(normalized)
	}
}
