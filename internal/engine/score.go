package engine

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Engagement score weights. Tuned heuristics; the tests pin the score to
// [0,1] and to directional behavior rather than exact values.
const (
	weightUtilization = 0.35
	weightHook        = 0.15
	weightCTA         = 0.15
	weightEvenness    = 0.20
	weightOrphans     = 0.15
)

// Phrases that mark a closing call-to-action.
var ctaSignals = []string{
	"follow", "share", "repost", "reply", "save this", "let me know",
	"drop a", "what's your take", "questions?",
}

// scoreEngagement is a pure function over the decorated post sequence. It
// returns a 0..1 quality heuristic plus actionable suggestions. It never
// mutates the posts.
func scoreEngagement(posts []Post, opts FormattingOptions) (float64, []string) {
	if len(posts) == 0 {
		return 0, nil
	}

	var suggestions []string
	n := len(posts)

	utilization := meanUtilization(posts, opts.MaxCharsPerPost)
	if utilization < 0.5 && n > 1 {
		suggestions = append(suggestions, fmt.Sprintf(
			"posts average %.0f%% of the character budget — fuller posts read as more substantial",
			utilization*100))
	}

	hook := 0.0
	if opensWithHook(posts[0].Text) || startsWithKnownHook(posts[0].Text) {
		hook = 1.0
	} else {
		suggestions = append(suggestions,
			"post 1 opens flat — consider a question or bold claim to hook readers")
	}

	cta := 0.0
	if hasCallToAction(posts[n-1].Text) {
		cta = 1.0
	} else {
		suggestions = append(suggestions,
			"no call-to-action detected in the final post — ask readers to reply or follow")
	}

	evenness := 1.0 - lengthVariation(posts, opts.MaxCharsPerPost)

	orphanPenalty := 0.0
	if opts.MinPostChars > 0 {
		orphans := 0
		for i, p := range posts {
			if i == n-1 {
				continue // the tail post is allowed to run short
			}
			if p.CharCount < opts.MinPostChars {
				orphans++
				suggestions = append(suggestions, fmt.Sprintf(
					"post %d is short relative to the rest — consider merging with post %d",
					p.Index, p.Index+1))
			}
		}
		orphanPenalty = float64(orphans) / float64(n)
	}

	score := weightUtilization*utilization +
		weightHook*hook +
		weightCTA*cta +
		weightEvenness*evenness +
		weightOrphans*(1.0-orphanPenalty)

	return clamp01(score), suggestions
}

// meanUtilization averages how close posts sit to the character limit. The
// final post is excluded when there is more than one, since it holds
// whatever content remained.
func meanUtilization(posts []Post, maxChars int) float64 {
	counted := posts
	if len(posts) > 1 {
		counted = posts[:len(posts)-1]
	}
	sum := 0.0
	for _, p := range counted {
		sum += float64(p.CharCount) / float64(maxChars)
	}
	return clamp01(sum / float64(len(counted)))
}

// lengthVariation returns the standard deviation of post lengths normalized
// by the character limit, clamped to [0,1]. High variation reads as uneven
// pacing.
func lengthVariation(posts []Post, maxChars int) float64 {
	if len(posts) < 2 {
		return 0
	}
	mean := 0.0
	for _, p := range posts {
		mean += float64(p.CharCount)
	}
	mean /= float64(len(posts))

	variance := 0.0
	for _, p := range posts {
		d := float64(p.CharCount) - mean
		variance += d * d
	}
	variance /= float64(len(posts))

	return clamp01(math.Sqrt(variance) / float64(maxChars))
}

// startsWithKnownHook reports whether the first post opens with one of the
// decorator's own hook lines.
func startsWithKnownHook(text string) bool {
	for _, hooks := range hookTemplates {
		for _, h := range hooks {
			if strings.HasPrefix(text, h) {
				return true
			}
		}
	}
	return false
}

// hasCallToAction reports whether the text closes with a recognizable ask.
func hasCallToAction(text string) bool {
	lower := strings.ToLower(text)
	for _, signal := range ctaSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	// A trailing question is itself an ask.
	trimmed := strings.TrimRight(stripNumberingSuffix(text), `"')] `)
	if trimmed == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(trimmed)
	return r == '?'
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
