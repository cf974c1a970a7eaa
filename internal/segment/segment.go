// Package segment splits text into word tokens. Chinese text has no spaces
// between words, so a dictionary-based segmenter (gse) is used; a rune-class
// splitter takes over when the dictionary cannot be loaded.
package segment

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-ego/gse"

	"github.com/dshills/docsearch/internal/logger"
)

// Tokenizer splits text into word tokens
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a function to Tokenizer
type TokenizerFunc func(text string) []string

// Tokenize implements Tokenizer
func (f TokenizerFunc) Tokenize(text string) []string {
	return f(text)
}

// GSE tokenizes with the gse dictionary segmenter in accurate mode with HMM
// for unknown words
type GSE struct {
	seg gse.Segmenter
}

// NewGSE loads the embedded dictionary. Loading takes noticeable time and
// memory, so prefer the shared instance returned by Default.
func NewGSE() (*GSE, error) {
	g := &GSE{}
	if err := g.seg.LoadDictEmbed(); err != nil {
		return nil, err
	}
	return g, nil
}

// Tokenize implements Tokenizer. Whitespace-only tokens are dropped.
func (g *GSE) Tokenize(text string) []string {
	return dropBlank(g.seg.Cut(text, true))
}

var (
	defaultOnce sync.Once
	defaultTok  Tokenizer
)

// Default returns the process-wide dictionary tokenizer, loading it on first
// use. If the dictionary fails to load, Fields is returned instead.
func Default() Tokenizer {
	defaultOnce.Do(func() {
		g, err := NewGSE()
		if err != nil {
			logger.Warn("word segmenter dictionary unavailable, falling back to rune classes: %v", err)
			defaultTok = Fields{}
			return
		}
		defaultTok = g
	})
	return defaultTok
}

// Fields splits text into maximal runs of Han ideographs and maximal runs of
// other letters, digits and underscores. Everything else separates tokens.
type Fields struct{}

// Tokenize implements Tokenizer
func (Fields) Tokenize(text string) []string {
	var (
		tokens []string
		cur    strings.Builder
		curHan bool
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range text {
		han := unicode.Is(unicode.Han, r)
		word := han || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
		if !word {
			flush()
			continue
		}
		if cur.Len() > 0 && han != curHan {
			flush()
		}
		curHan = han
		cur.WriteRune(r)
	}
	flush()

	return tokens
}

func dropBlank(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if strings.TrimSpace(tok) != "" {
			out = append(out, tok)
		}
	}
	return out
}
