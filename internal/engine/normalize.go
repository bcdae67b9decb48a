package engine

import (
	"regexp"
	"strings"
	"unicode"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n\s*`)

// Normalize cleans raw input text: line endings are unified, control
// characters stripped, runs of whitespace collapsed to single spaces, and
// paragraph breaks preserved as exactly one blank line ("\n\n").
func Normalize(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	var paragraphs []string
	for _, p := range paragraphBreak.Split(s, -1) {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		paragraphs = append(paragraphs, strings.Join(fields, " "))
	}

	if len(paragraphs) == 0 {
		return "", ErrEmptyContent
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
