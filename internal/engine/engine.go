package engine

// Format is the sole public entry point: it converts a Draft into a
// Threadstorm or fails with one of the typed errors (ErrEmptyContent,
// *ConfigurationError, *PackingOverflowError). The pipeline is atomic:
// callers never observe partially formatted state. It is also fully
// deterministic, so retrying with identical input never changes the
// outcome.
//
// Format is safe for unbounded concurrent use; each call owns all of its
// state.
func Format(draft Draft) (*Threadstorm, error) {
	opts := draft.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	normalized, err := Normalize(draft.RawContent)
	if err != nil {
		return nil, err
	}

	segments := Segmentize(normalized)

	contents, warnings, err := pack(segments, opts)
	if err != nil {
		return nil, err
	}

	posts, notes := decorate(contents, normalized, opts)

	// The scorer runs before the advisor annotates the posts, so the
	// score is a function of the decorated text alone, never of image
	// placement.
	score, scoreNotes := scoreEngagement(posts, opts)
	adviseImages(posts, opts)

	total := 0
	for _, p := range posts {
		total += p.CharCount
	}

	var suggestions []string
	suggestions = append(suggestions, warnings...)
	suggestions = append(suggestions, notes...)
	suggestions = append(suggestions, scoreNotes...)

	return &Threadstorm{
		Posts:           posts,
		TotalPosts:      len(posts),
		TotalCharacters: total,
		EngagementScore: score,
		Suggestions:     suggestions,
	}, nil
}
