package engine

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"
)

// Hook and CTA templates per tone. Selection is a stable hash of the
// normalized content, so the same draft always gets the same decoration.
var hookTemplates = map[Tone][]string{
	ToneProfessional: {
		"A thread worth your next two minutes:",
		"Some thoughts I keep coming back to:",
		"Here's what I've learned — a thread:",
	},
	ToneCasual: {
		"Okay, buckle up — thread time:",
		"Been thinking about this a lot lately:",
		"Story time, stay with me:",
	},
	ToneEducational: {
		"Let's break this down, step by step:",
		"A quick explainer — thread:",
		"Everything you need to know, in one thread:",
	},
}

var ctaTemplates = map[Tone][]string{
	ToneProfessional: {
		"If this resonated, share it with someone who'd find it useful.",
		"Follow along for more threads like this one.",
		"What's your take? Reply and let me know.",
	},
	ToneCasual: {
		"That's the whole story — repost if you made it this far!",
		"Drop a reply if this hit home.",
		"Follow for more rambles like this one.",
	},
	ToneEducational: {
		"Save this thread for later — you'll want it.",
		"Questions? Reply and I'll answer what I can.",
		"Share this with someone who's still learning the basics.",
	},
}

// Words that signal the content already opens with a question or command,
// making an inserted hook redundant.
var openingSignals = map[string]struct{}{
	"what": {}, "why": {}, "how": {}, "when": {}, "where": {}, "who": {},
	"which": {}, "did": {}, "do": {}, "does": {}, "is": {}, "are": {},
	"can": {}, "could": {}, "should": {}, "would": {}, "will": {},
	"imagine": {}, "consider": {}, "think": {}, "stop": {}, "remember": {},
	"picture": {}, "listen": {}, "try": {}, "ask": {}, "look": {}, "forget": {},
}

// decorate turns packed post contents into final posts: hook on the first
// post, CTA on the last, numbering suffix on all. Hook and CTA are skipped
// rather than erroring when they would overflow the limit; every skip is
// reported in the returned notes.
func decorate(contents []string, normalized string, opts FormattingOptions) ([]Post, []string) {
	n := len(contents)
	var notes []string
	pick := templateIndex(normalized)

	if opts.EnableHook && n > 0 && !opensWithHook(contents[0]) {
		hook := hookTemplates[opts.Tone][pick%len(hookTemplates[opts.Tone])]
		candidate := hook + "\n\n" + contents[0]
		if utf8.RuneCountInString(candidate)+exactSuffixWidth(1, n, opts) <= opts.MaxCharsPerPost {
			contents[0] = candidate
		} else {
			notes = append(notes, "opening hook omitted: not enough room in the first post")
		}
	}

	if opts.EnableCTA && n > 0 {
		cta := ctaTemplates[opts.Tone][pick%len(ctaTemplates[opts.Tone])]
		candidate := contents[n-1] + "\n\n" + cta
		if utf8.RuneCountInString(candidate)+exactSuffixWidth(n, n, opts) <= opts.MaxCharsPerPost {
			contents[n-1] = candidate
		} else {
			notes = append(notes, "call-to-action omitted: not enough room in the last post")
		}
	}

	posts := make([]Post, n)
	for i, text := range contents {
		if opts.IncludeNumbering {
			text += fmt.Sprintf(" (%d/%d)", i+1, n)
		}
		posts[i] = Post{
			Index:     i + 1,
			Text:      text,
			CharCount: utf8.RuneCountInString(text),
		}
	}

	return posts, notes
}

// exactSuffixWidth is the rendered width of post i's numbering suffix given
// the final post count n, or zero when numbering is off.
func exactSuffixWidth(i, n int, opts FormattingOptions) int {
	if !opts.IncludeNumbering {
		return 0
	}
	return len(" (/)") + digitCount(i) + digitCount(n)
}

// opensWithHook reports whether text already starts with an interrogative or
// imperative sentence.
func opensWithHook(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}

	first := strings.ToLower(strings.Trim(fields[0], `"'([`))
	if _, ok := openingSignals[first]; ok {
		return true
	}

	// A question mark before the first period also counts.
	for _, word := range fields {
		if endsSentence(word) {
			return strings.ContainsRune(word, '?')
		}
	}
	return false
}

// templateIndex derives a stable template choice from the content.
func templateIndex(normalized string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalized))
	return int(h.Sum32() & 0x7fffffff)
}
