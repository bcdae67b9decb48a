package engine

import (
	"strings"
)

// Common abbreviations whose trailing period does not end a sentence.
var abbreviations = map[string]struct{}{
	"mr.": {}, "mrs.": {}, "ms.": {}, "dr.": {}, "prof.": {},
	"sr.": {}, "jr.": {}, "st.": {}, "vs.": {}, "etc.": {},
	"e.g.": {}, "i.e.": {}, "cf.": {}, "approx.": {}, "dept.": {},
	"est.": {}, "fig.": {}, "vol.": {}, "no.": {}, "inc.": {},
	"ltd.": {}, "co.": {}, "a.m.": {}, "p.m.": {}, "u.s.": {},
}

// Coordinating and subordinating conjunctions that mark a clause boundary
// when they start the next token.
var clauseConjunctions = map[string]struct{}{
	"and": {}, "but": {}, "or": {}, "so": {}, "yet": {},
	"because": {}, "while": {}, "although": {}, "whereas": {},
}

// Segmentize scans normalized text and produces the ordered candidate split
// stream: one segment per word, each carrying the rank of the boundary that
// follows it. Paragraph breaks always outrank sentence and clause breaks, so
// no post ever crosses a paragraph boundary silently.
func Segmentize(normalized string) []Segment {
	var segments []Segment

	for _, paragraph := range strings.Split(normalized, "\n\n") {
		words := strings.Fields(paragraph)
		for i, word := range words {
			rank := BoundaryWord
			switch {
			case i == len(words)-1:
				rank = BoundaryParagraph
			case endsSentence(word):
				rank = BoundarySentence
			case endsClause(word):
				rank = BoundaryClause
			default:
				next := strings.ToLower(strings.Trim(words[i+1], `"'([`))
				if _, ok := clauseConjunctions[next]; ok {
					rank = BoundaryClause
				}
			}
			segments = append(segments, Segment{Text: word, Rank: rank})
		}
	}

	return segments
}

// endsSentence reports whether a word terminates a sentence, accounting for
// abbreviations and single-letter initials.
func endsSentence(word string) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '!', '?':
		return true
	case '.':
		lower := strings.ToLower(trimmed)
		if _, ok := abbreviations[lower]; ok {
			return false
		}
		// Single-letter initials like "J." in "J. Smith".
		if len(lower) == 2 && lower[0] >= 'a' && lower[0] <= 'z' {
			return false
		}
		return true
	}
	return false
}

// endsClause reports whether a word terminates a clause.
func endsClause(word string) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case ',', ';', ':':
		return true
	}
	return false
}
