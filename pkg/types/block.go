package types

import (
	"fmt"
	"strings"
)

// Block represents a contiguous run of paragraphs from one document that
// forms one retrievable unit
type Block struct {
	// Location
	Filename   string
	StartIndex int // 0-based index of the first paragraph

	// Content
	Content string // Normalized paragraph texts joined with "\n"
	Context string // Heading breadcrumb or excerpt describing the location

	// Matching
	Keywords        []string // Query keywords found verbatim in Content
	SimilarityScore float64  // Assigned by the ranker, 0 until then
}

// Validate checks the block invariants
func (b *Block) Validate() error {
	if b.Filename == "" {
		return ErrMissingFilename
	}

	if b.Content == "" {
		return ErrEmptyContent
	}

	if b.StartIndex < 0 {
		return ErrInvalidStartIndex
	}

	if len(b.Keywords) == 0 {
		return ErrNoKeywords
	}

	for _, kw := range b.Keywords {
		if !strings.Contains(b.Content, kw) {
			return fmt.Errorf("%w: %q", ErrKeywordNotInContent, kw)
		}
	}

	if b.SimilarityScore < 0 || b.SimilarityScore > 1 {
		return ErrInvalidScore
	}

	return nil
}

// ToResult converts the block to its output record
func (b *Block) ToResult() Result {
	keywords := make([]string, len(b.Keywords))
	copy(keywords, b.Keywords)

	return Result{
		Filename:       b.Filename,
		Keywords:       keywords,
		Context:        b.Context,
		StartParagraph: b.StartIndex + 1,
		Content:        b.Content,
	}
}
