package heading

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/docsearch/internal/textnorm"
	"github.com/dshills/docsearch/pkg/types"
)

// Placeholder is returned when no context can be derived
const Placeholder = "document content"

const (
	// DefaultWindow is how many paragraphs, counting the target, are scanned
	// backward for headings
	DefaultWindow = 20

	// DefaultRange is how many adjacent paragraphs on each side enhanced
	// context includes
	DefaultRange = 2

	maxBreadcrumbLevels = 3
	fallbackLookback    = 9
	fallbackMinLen      = 20
	fallbackMaxLen      = 200
	fallbackPreviewLen  = 50
	adjacentMinLen      = 10
	adjacentPreviewLen  = 30

	breadcrumbSep = " > "
	adjacentSep   = " | "
	enhancedSep   = " >> "
)

// Mode selects how context strings are built
type Mode int

const (
	// ModeStandard builds a heading breadcrumb with an excerpt fallback
	ModeStandard Mode = iota
	// ModeEnhanced appends previews of adjacent paragraphs to the breadcrumb
	ModeEnhanced
)

// String returns the mode name
func (m Mode) String() string {
	if m == ModeEnhanced {
		return "enhanced"
	}
	return "standard"
}

var (
	bulletItem     = regexp.MustCompile(`^\s*[-*•]\s`)
	enumeratedStep = regexp.MustCompile(`^\s*\d+[.)]\s`)
)

// Analysis holds the normalized text and heading candidate of every
// paragraph of one document. It is computed once per document and shared by
// all context lookups on it.
type Analysis struct {
	paras      []types.Paragraph
	texts      []string
	candidates []*Candidate
}

// Analyze normalizes and scores every paragraph of doc
func Analyze(doc types.Document) *Analysis {
	paras := doc.Paragraphs()
	a := &Analysis{
		paras:      paras,
		texts:      make([]string, len(paras)),
		candidates: make([]*Candidate, len(paras)),
	}

	for i, p := range paras {
		p.Index = i
		a.texts[i] = textnorm.Normalize(p.Text)
		if c, ok := Evaluate(p); ok {
			a.candidates[i] = &c
		}
	}

	return a
}

// Len returns the number of paragraphs
func (a *Analysis) Len() int {
	return len(a.paras)
}

// Text returns the normalized text of paragraph i
func (a *Analysis) Text(i int) string {
	return a.texts[i]
}

// Paragraph returns paragraph i as parsed
func (a *Analysis) Paragraph(i int) types.Paragraph {
	return a.paras[i]
}

// Candidate returns the heading candidate for paragraph i, or nil
func (a *Analysis) Candidate(i int) *Candidate {
	return a.candidates[i]
}

// Resolver produces context strings for paragraph positions
type Resolver struct {
	window int
	rng    int
}

// NewResolver creates a Resolver. Non-positive window falls back to
// DefaultWindow; negative rng falls back to DefaultRange.
func NewResolver(window, rng int) *Resolver {
	if window <= 0 {
		window = DefaultWindow
	}
	if rng < 0 {
		rng = DefaultRange
	}
	return &Resolver{window: window, rng: rng}
}

// Resolve returns the context of paragraph idx in doc
func (r *Resolver) Resolve(doc types.Document, idx int, mode Mode) string {
	return r.ResolveAnalysis(Analyze(doc), idx, mode)
}

// ResolveAnalysis is Resolve over a precomputed Analysis
func (r *Resolver) ResolveAnalysis(a *Analysis, idx int, mode Mode) string {
	if idx < 0 || idx >= a.Len() {
		return Placeholder
	}

	if mode == ModeEnhanced {
		return r.enhanced(a, idx)
	}
	return r.standard(a, idx)
}

func (r *Resolver) standard(a *Analysis, idx int) string {
	if crumb := r.breadcrumb(a, idx); crumb != "" {
		return crumb
	}
	if excerpt := fallbackExcerpt(a, idx); excerpt != "" {
		return excerpt
	}
	return Placeholder
}

// breadcrumb picks at most one candidate per level, most significant levels
// first, and joins them in document order.
func (r *Resolver) breadcrumb(a *Analysis, idx int) string {
	lo := idx - r.window + 1
	if lo < 0 {
		lo = 0
	}

	// Collected nearest first so stable sorting prefers closer headings on ties
	var candidates []*Candidate
	for i := idx; i >= lo; i-- {
		if c := a.candidates[i]; c != nil {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Level != candidates[j].Level {
			return candidates[i].Level < candidates[j].Level
		}
		return candidates[i].Score > candidates[j].Score
	})

	selected := make([]*Candidate, 0, maxBreadcrumbLevels)
	seen := make(map[int]bool, maxBreadcrumbLevels)
	for _, c := range candidates {
		if seen[c.Level] {
			continue
		}
		seen[c.Level] = true
		selected = append(selected, c)
		if len(selected) == maxBreadcrumbLevels {
			break
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})

	parts := make([]string, len(selected))
	for i, c := range selected {
		parts[i] = c.Text
	}
	return strings.Join(parts, breadcrumbSep)
}

// fallbackExcerpt returns a preview of the nearest preceding paragraph that
// reads like prose, or "" if none qualifies.
func fallbackExcerpt(a *Analysis, idx int) string {
	for i := idx - 1; i >= 0 && i >= idx-fallbackLookback; i-- {
		text := a.texts[i]
		n := textnorm.Len(text)
		if n < fallbackMinLen || n > fallbackMaxLen {
			continue
		}

		raw := a.paras[i].Text
		if bulletItem.MatchString(raw) || enumeratedStep.MatchString(raw) || enumeratedStep.MatchString(text) {
			continue
		}

		return textnorm.Truncate(text, fallbackPreviewLen)
	}
	return ""
}

func (r *Resolver) enhanced(a *Analysis, idx int) string {
	var parts []string

	if main := r.standard(a, idx); main != Placeholder {
		parts = append(parts, main)
	}

	var adjacent []string
	lo := idx - r.rng
	if lo < 0 {
		lo = 0
	}
	for i := lo; i < idx; i++ {
		if preview, ok := adjacentPreview(a.texts[i]); ok {
			adjacent = append(adjacent, "preceding: "+preview)
		}
	}
	for i := idx + 1; i <= idx+r.rng && i < a.Len(); i++ {
		if preview, ok := adjacentPreview(a.texts[i]); ok {
			adjacent = append(adjacent, "following: "+preview)
		}
	}
	if len(adjacent) > 0 {
		parts = append(parts, strings.Join(adjacent, adjacentSep))
	}

	if len(parts) == 0 {
		return Placeholder
	}
	return strings.Join(parts, enhancedSep)
}

func adjacentPreview(text string) (string, bool) {
	if textnorm.Len(text) <= adjacentMinLen {
		return "", false
	}
	return textnorm.Truncate(text, adjacentPreviewLen), true
}
