package types

import "errors"

// Domain errors for type validation
var (
	// Block errors
	ErrMissingFilename     = errors.New("filename is required")
	ErrEmptyContent        = errors.New("content cannot be empty")
	ErrInvalidStartIndex   = errors.New("start index must be >= 0")
	ErrNoKeywords          = errors.New("block must match at least one keyword")
	ErrKeywordNotInContent = errors.New("matched keyword does not occur in content")
	ErrInvalidScore        = errors.New("similarity score must be between 0 and 1")

	// Result errors
	ErrInvalidStartParagraph = errors.New("start paragraph must be >= 1")
)
