package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Tone selects the hook and call-to-action templates. It affects decoration
// only, never how content is split.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneEducational  Tone = "educational"
)

// FormattingOptions controls how a draft is packed and decorated.
type FormattingOptions struct {
	// MaxCharsPerPost is the platform character limit per post.
	MaxCharsPerPost int `json:"max_chars_per_post" validate:"gte=1,lte=10000"`

	// Tone selects hook/CTA templates.
	Tone Tone `json:"tone" validate:"oneof=professional casual educational"`

	// IncludeNumbering appends a " (i/n)" suffix to every post.
	IncludeNumbering bool `json:"include_numbering"`

	// EnableHook prepends an engagement hook to the first post when the
	// content does not already open with a question or imperative.
	EnableHook bool `json:"enable_hook"`

	// EnableCTA appends a call-to-action to the last post.
	EnableCTA bool `json:"enable_cta"`

	// ImageRhythm suggests an image every N posts between the anchors.
	ImageRhythm int `json:"image_rhythm" validate:"gte=1"`

	// MinPostChars is the orphan floor: posts shorter than this while more
	// content remains are avoided when a better cut exists. Zero disables it.
	MinPostChars int `json:"min_post_chars" validate:"gte=0"`
}

var validate = validator.New()

// DefaultOptions returns the standard Threads-style configuration.
func DefaultOptions() FormattingOptions {
	return FormattingOptions{
		MaxCharsPerPost:  500,
		Tone:             ToneProfessional,
		IncludeNumbering: true,
		EnableHook:       true,
		EnableCTA:        true,
		ImageRhythm:      3,
		MinPostChars:     40,
	}
}

// Validate checks field ranges and the numbering-suffix invariant: the
// character limit must hold the widest suffix the packer reserves for,
// " (99/99)", plus at least one content character.
func (o FormattingOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return &ConfigurationError{Field: "options", Reason: err.Error()}
	}
	if o.IncludeNumbering {
		min := suffixWidth(estimateDigits) + 1
		if o.MaxCharsPerPost < min {
			return &ConfigurationError{
				Field: "max_chars_per_post",
				Reason: fmt.Sprintf("%d is too small to hold a numbering suffix plus content (minimum %d)",
					o.MaxCharsPerPost, min),
			}
		}
	}
	return nil
}
