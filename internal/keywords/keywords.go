// Package keywords turns a natural-language question into search keywords.
package keywords

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/docsearch/internal/segment"
)

// DefaultStopwords are dropped from extracted keywords unless replaced
var DefaultStopwords = []string{
	"的", "了", "是", "在", "我", "有", "和", "就", "不", "人", "都", "一", "一个",
	"上", "也", "很", "到", "说", "要", "去", "你", "会", "着", "没有", "看", "好",
	"自己", "这", "那", "如何", "怎么", "怎样", "什么", "哪些", "吗", "呢", "吧", "啊",
	"请问", "可以", "需要", "进行", "以及", "或者",
	"a", "an", "and", "are", "can", "do", "does", "for", "how", "i", "in", "is",
	"it", "my", "of", "on", "or", "the", "to", "what", "when", "where", "which",
	"why", "with",
}

// Extractor segments text and keeps the tokens worth searching for
type Extractor struct {
	tokenizer segment.Tokenizer

	mu        sync.RWMutex
	stopwords map[string]struct{}
}

// New creates an Extractor. A nil tokenizer selects segment.Default(); nil
// stopwords selects DefaultStopwords.
func New(tokenizer segment.Tokenizer, stopwords []string) *Extractor {
	if tokenizer == nil {
		tokenizer = segment.Default()
	}
	if stopwords == nil {
		stopwords = DefaultStopwords
	}

	e := &Extractor{
		tokenizer: tokenizer,
		stopwords: make(map[string]struct{}, len(stopwords)),
	}
	e.AddStopwords(stopwords...)
	return e
}

// Extract returns the distinct keywords of text in order of first
// appearance. Blank text yields an empty slice.
func (e *Extractor) Extract(text string) []string {
	keywords := []string{}
	if strings.TrimSpace(text) == "" {
		return keywords
	}

	seen := make(map[string]bool)
	for _, tok := range e.tokenizer.Tokenize(text) {
		tok = strings.TrimSpace(tok)
		if seen[tok] || !e.valid(tok) {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
	}
	return keywords
}

func (e *Extractor) valid(word string) bool {
	if word == "" || e.IsStopword(word) {
		return false
	}

	first, _ := utf8.DecodeRuneInString(word)
	if !leading(first) {
		return false
	}

	// Single characters only carry meaning as numbers
	if utf8.RuneCountInString(word) == 1 && !unicode.IsDigit(first) {
		return false
	}
	return true
}

// leading reports whether r may start a keyword: a CJK unified ideograph or
// an ASCII letter or digit
func leading(r rune) bool {
	switch {
	case r >= 0x4e00 && r <= 0x9fa5:
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return false
}

// IsStopword reports whether word is ignored. ASCII case is ignored.
func (e *Extractor) IsStopword(word string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.stopwords[strings.ToLower(word)]
	return ok
}

// AddStopwords adds words to the stopword set
func (e *Extractor) AddStopwords(words ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			e.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// RemoveStopwords removes words from the stopword set
func (e *Extractor) RemoveStopwords(words ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, w := range words {
		delete(e.stopwords, strings.ToLower(strings.TrimSpace(w)))
	}
}
