package chunker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/docsearch/internal/heading"
	"github.com/dshills/docsearch/internal/parser"
	"github.com/dshills/docsearch/pkg/types"
)

// Loader returns the parsed document at path
type Loader interface {
	Load(path string) (types.Document, error)
}

// Chunker splits documents into keyword-matched blocks
type Chunker struct {
	loader   Loader
	policy   BoundaryPolicy
	resolver *heading.Resolver
	mode     heading.Mode
}

// Option configures a Chunker
type Option func(*Chunker)

// WithLoader sets how documents are loaded (default: an uncached parser)
func WithLoader(l Loader) Option {
	return func(c *Chunker) {
		c.loader = l
	}
}

// WithPolicy sets the block boundary policy (default: ParagraphPolicy)
func WithPolicy(p BoundaryPolicy) Option {
	return func(c *Chunker) {
		c.policy = p
	}
}

// WithResolver sets the context resolver
func WithResolver(r *heading.Resolver) Option {
	return func(c *Chunker) {
		c.resolver = r
	}
}

// WithContextMode sets standard or enhanced context (default: standard)
func WithContextMode(m heading.Mode) Option {
	return func(c *Chunker) {
		c.mode = m
	}
}

// New creates a new Chunker instance
func New(opts ...Option) *Chunker {
	c := &Chunker{
		loader:   parser.New(),
		policy:   ParagraphPolicy{},
		resolver: heading.NewResolver(heading.DefaultWindow, heading.DefaultRange),
		mode:     heading.ModeStandard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the boundary policy in use
func (c *Chunker) Policy() BoundaryPolicy {
	return c.policy
}

// Mode returns the context mode in use
func (c *Chunker) Mode() heading.Mode {
	return c.mode
}

// ChunkFile loads dir/name and returns its matching blocks. Unsupported files
// and lock artifacts yield no blocks and no error.
func (c *Chunker) ChunkFile(ctx context.Context, dir, name string, keywords []string) ([]*types.Block, error) {
	if !parser.Supported(name) {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := c.loader.Load(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	return c.ChunkDocument(doc, name, keywords), nil
}

// ChunkDocument groups the paragraphs of doc into blocks and returns those
// whose text contains at least one keyword verbatim
func (c *Chunker) ChunkDocument(doc types.Document, filename string, keywords []string) []*types.Block {
	keywords = uniqueKeywords(keywords)
	if len(keywords) == 0 {
		return nil
	}

	analysis := heading.Analyze(doc)

	var blocks []*types.Block
	for _, span := range c.spans(analysis) {
		content := span.content(analysis)
		found := matchKeywords(content, keywords)
		if len(found) == 0 {
			continue
		}

		blocks = append(blocks, &types.Block{
			Filename:   filename,
			StartIndex: span.start,
			Content:    content,
			Context:    c.resolver.ResolveAnalysis(analysis, span.start, c.mode),
			Keywords:   found,
		})
	}

	return blocks
}

// span is a half-open paragraph range [start, end)
type span struct {
	start, end int
}

func (s span) content(a *heading.Analysis) string {
	var texts []string
	for i := s.start; i < s.end; i++ {
		if text := a.Text(i); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

// spans splits the document at block starts. The first non-empty paragraph
// always starts a block; empty paragraphs never do.
func (c *Chunker) spans(a *heading.Analysis) []span {
	var spans []span
	open := -1

	for i := 0; i < a.Len(); i++ {
		if a.Text(i) == "" {
			continue
		}
		if open >= 0 && !c.policy.IsBlockStart(a, i) {
			continue
		}
		if open >= 0 {
			spans = append(spans, span{start: open, end: i})
		}
		open = i
	}

	if open >= 0 {
		spans = append(spans, span{start: open, end: a.Len()})
	}
	return spans
}

// matchKeywords returns the keywords occurring in content, in query order.
// Matching is case-sensitive and untokenized.
func matchKeywords(content string, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// uniqueKeywords drops empty and repeated keywords, keeping first occurrences
func uniqueKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
