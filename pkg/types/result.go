package types

// Result is the serialized form of a ranked block returned to callers.
// The JSON field names are part of the output contract.
type Result struct {
	Filename       string   `json:"filename"`
	Keywords       []string `json:"keywords"`
	Context        string   `json:"context"`
	StartParagraph int      `json:"start_paragraph"` // 1-based
	Content        string   `json:"content"`
}

// Validate checks if the result is valid
func (r *Result) Validate() error {
	if r.Filename == "" {
		return ErrMissingFilename
	}

	if r.StartParagraph < 1 {
		return ErrInvalidStartParagraph
	}

	if r.Content == "" {
		return ErrEmptyContent
	}

	return nil
}

// CopyResults returns a deep copy of results
func CopyResults(src []Result) []Result {
	if src == nil {
		return nil
	}

	dst := make([]Result, len(src))
	for i, r := range src {
		dst[i] = r
		dst[i].Keywords = make([]string, len(r.Keywords))
		copy(dst[i].Keywords, r.Keywords)
	}
	return dst
}
