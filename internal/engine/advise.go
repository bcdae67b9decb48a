package engine

import (
	"regexp"
)

// Image placement rationale tags surfaced to the caller.
const (
	rationaleHookAnchor   = "hook-anchor"
	rationaleCTAAnchor    = "cta-anchor"
	rationaleVisualRhythm = "visual-rhythm"
	rationaleDataHeavy    = "data-heavy"
)

var (
	numberingSuffix = regexp.MustCompile(` \(\d+/\d+\)$`)

	// List markers, numerals, and colon-led enumerations signal content
	// that benefits from a supporting visual.
	dataHeavyPattern = regexp.MustCompile(`(?m)^[-•*]\s|\d|:\s`)
)

// adviseImages proposes which posts should carry an image and why. Rule
// based, not learned: the first and last posts are always anchors, every
// ImageRhythm-th post in between keeps a visual cadence, and posts dense
// with lists or figures get flagged as data-heavy. It writes only the image
// fields; text is never touched. Selecting actual assets is the caller's
// job.
func adviseImages(posts []Post, opts FormattingOptions) {
	n := len(posts)
	for i := range posts {
		p := &posts[i]
		switch {
		case i == 0:
			p.HasImageSuggestion = true
			p.ImageRationale = rationaleHookAnchor
		case i == n-1:
			p.HasImageSuggestion = true
			p.ImageRationale = rationaleCTAAnchor
		case dataHeavyPattern.MatchString(stripNumberingSuffix(p.Text)):
			p.HasImageSuggestion = true
			p.ImageRationale = rationaleDataHeavy
		case (i+1)%opts.ImageRhythm == 0:
			p.HasImageSuggestion = true
			p.ImageRationale = rationaleVisualRhythm
		}
	}
}

// stripNumberingSuffix removes a trailing " (i/n)" so suffix digits never
// count as content signals.
func stripNumberingSuffix(text string) string {
	return numberingSuffix.ReplaceAllString(text, "")
}
