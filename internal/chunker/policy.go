package chunker

import (
	"fmt"

	"github.com/dshills/docsearch/internal/heading"
)

// Policy names accepted by PolicyByName
const (
	PolicyParagraph = "paragraph"
	PolicyHeading   = "heading"
)

// DefaultHeadingThreshold is the minimum heading score HeadingPolicy accepts
const DefaultHeadingThreshold = 0.4

// BoundaryPolicy decides whether a non-empty paragraph starts a new block
type BoundaryPolicy interface {
	IsBlockStart(a *heading.Analysis, i int) bool
	Name() string
}

// ParagraphPolicy starts a block at every non-empty paragraph
type ParagraphPolicy struct{}

// IsBlockStart implements BoundaryPolicy
func (ParagraphPolicy) IsBlockStart(*heading.Analysis, int) bool {
	return true
}

// Name implements BoundaryPolicy
func (ParagraphPolicy) Name() string {
	return PolicyParagraph
}

// HeadingPolicy starts a block at paragraphs whose heading score reaches
// Threshold, so a block spans a heading and the body text below it
type HeadingPolicy struct {
	Threshold float64
}

// IsBlockStart implements BoundaryPolicy
func (p HeadingPolicy) IsBlockStart(a *heading.Analysis, i int) bool {
	c := a.Candidate(i)
	return c != nil && c.Score >= p.Threshold
}

// Name implements BoundaryPolicy
func (HeadingPolicy) Name() string {
	return PolicyHeading
}

// PolicyByName returns the named policy. threshold applies to the heading policy.
func PolicyByName(name string, threshold float64) (BoundaryPolicy, error) {
	switch name {
	case "", PolicyParagraph:
		return ParagraphPolicy{}, nil
	case PolicyHeading:
		if threshold <= 0 {
			threshold = DefaultHeadingThreshold
		}
		return HeadingPolicy{Threshold: threshold}, nil
	default:
		return nil, fmt.Errorf("unknown boundary policy %q", name)
	}
}
