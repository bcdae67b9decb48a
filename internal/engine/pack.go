package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// estimateDigits is the conservative digit width assumed for the post
	// count before the true value is known (reserves room for " (99/99)").
	estimateDigits = 2

	// maxPackIterations bounds the suffix-width fixed-point loop.
	maxPackIterations = 3

	// continuationMarker terminates every forced mid-token split.
	continuationMarker = "…"
)

// suffixWidth returns the rendered width of " (i/n)" when both i and n have
// the given digit count.
func suffixWidth(digits int) int {
	return len(" (/)") + 2*digits
}

// digitCount returns the number of decimal digits in n.
func digitCount(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// pack assembles segments into post contents under the character budget.
//
// The numbering suffix " (i/n)" has a width that depends on n, which is only
// known after packing completes, so packing runs as a bounded fixed-point
// iteration: pack with a conservative two-digit estimate, then repack with
// the wider exact width if the true n needs more digits. Width only grows
// across iterations and n only shrinks as width grows, so the loop
// converges for any sane configuration; pathological limits surface as
// PackingOverflowError.
func pack(segments []Segment, opts FormattingOptions) ([]string, []string, error) {
	estDigits := 0
	if opts.IncludeNumbering {
		estDigits = estimateDigits
	}

	for iter := 1; iter <= maxPackIterations; iter++ {
		budget := opts.MaxCharsPerPost
		if opts.IncludeNumbering {
			budget -= suffixWidth(estDigits)
		}
		if budget < 1 {
			return nil, nil, &PackingOverflowError{MaxChars: opts.MaxCharsPerPost, Iterations: iter}
		}

		posts, warnings := packOnce(segments, budget, opts.MinPostChars)
		if !opts.IncludeNumbering {
			return posts, warnings, nil
		}
		if need := digitCount(len(posts)); need > estDigits {
			estDigits = need
			continue
		}
		return posts, warnings, nil
	}

	return nil, nil, &PackingOverflowError{MaxChars: opts.MaxCharsPerPost, Iterations: maxPackIterations}
}

// packOnce greedily fills posts up to budget runes, cutting at the best
// available boundary when a post overflows.
func packOnce(segments []Segment, budget, floor int) ([]string, []string) {
	expanded, warnings := expandOversized(segments, budget)

	var posts []string
	var cur []Segment
	curLen := 0

	closeAt := func(cut int) {
		var b strings.Builder
		for i := 0; i <= cut; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cur[i].Text)
		}
		posts = append(posts, b.String())
		cur = append([]Segment(nil), cur[cut+1:]...)
		curLen = joinedLen(cur)
	}

	for _, seg := range expanded {
		for {
			addLen := utf8.RuneCountInString(seg.Text)
			if len(cur) > 0 {
				addLen++
			}
			if curLen+addLen <= budget {
				cur = append(cur, seg)
				curLen += addLen
				break
			}
			closeAt(bestCut(cur, floor))
		}
	}
	if len(cur) > 0 {
		closeAt(len(cur) - 1)
	}

	return posts, warnings
}

// bestCut picks the index after which the current post ends, preferring the
// latest occurrence of the highest-ranked boundary that keeps the post at or
// above the orphan floor. Falls back to cutting after the final word.
func bestCut(cur []Segment, floor int) int {
	best := len(cur) - 1
	bestRank := BoundaryWord
	prefix := joinedLen(cur)

	for j := len(cur) - 1; j >= 0; j-- {
		if prefix < floor {
			break
		}
		if cur[j].Rank > bestRank {
			bestRank = cur[j].Rank
			best = j
		}
		prefix -= utf8.RuneCountInString(cur[j].Text)
		if j > 0 {
			prefix--
		}
	}

	return best
}

// joinedLen returns the rune length of segments joined with single spaces.
func joinedLen(segments []Segment) int {
	n := 0
	for i, s := range segments {
		if i > 0 {
			n++
		}
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// expandOversized force-splits any single token longer than the budget into
// budget-sized pieces ending in a continuation marker, recording a warning.
// This is the only place raw words are split mid-token.
func expandOversized(segments []Segment, budget int) ([]Segment, []string) {
	var out []Segment
	var warnings []string

	for _, seg := range segments {
		length := utf8.RuneCountInString(seg.Text)
		if length <= budget {
			out = append(out, seg)
			continue
		}

		pieces := hardSplit(seg.Text, budget)
		warnings = append(warnings, fmt.Sprintf(
			"an unbreakable %d-character token was force-split across %d posts", length, len(pieces)))

		for i, piece := range pieces {
			rank := BoundaryWord
			if i == len(pieces)-1 {
				rank = seg.Rank
			}
			out = append(out, Segment{Text: piece, Rank: rank})
		}
	}

	return out, warnings
}

// hardSplit cuts a token into pieces of at most budget runes, every piece
// except the last ending with the continuation marker.
func hardSplit(token string, budget int) []string {
	runes := []rune(token)
	if budget < 2 {
		pieces := make([]string, 0, len(runes))
		for _, r := range runes {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	per := budget - 1
	var pieces []string
	for len(runes) > budget {
		pieces = append(pieces, string(runes[:per])+continuationMarker)
		runes = runes[per:]
	}
	return append(pieces, string(runes))
}
