package searcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dshills/docsearch/internal/chunker"
	"github.com/dshills/docsearch/internal/heading"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/parser"
	"github.com/dshills/docsearch/internal/ranker"
	"github.com/dshills/docsearch/internal/scanner"
	"github.com/dshills/docsearch/internal/segment"
	"github.com/dshills/docsearch/pkg/types"
)

// ErrDocsDirNotFound is reported in SearchResponse.Diagnostic when the
// documents directory does not exist
var ErrDocsDirNotFound = scanner.ErrDirectoryNotFound

// Defaults applied by New to zero Config fields
const (
	DefaultMaxWorkers        = 4
	DefaultMaxResults        = 10
	DefaultDocumentCacheSize = parser.DefaultCacheSize
)

// Config contains the searcher's tunables
type Config struct {
	DocsDir           string
	MaxWorkers        int
	MaxResults        int
	CacheSize         int
	DocumentCacheSize int
	ContextWindow     int
	ContextRange      int
	EnhancedContext   bool
	Policy            chunker.BoundaryPolicy
}

// SearchResponse contains search results and metadata
type SearchResponse struct {
	Keywords     []string       `json:"keywords"`
	Results      []types.Result `json:"results"`
	TotalBlocks  int            `json:"total_blocks"`
	FilesScanned int            `json:"files_scanned"`
	FilesSkipped int            `json:"files_skipped"`
	FilesFailed  int            `json:"files_failed"`
	Failures     []string       `json:"failures,omitempty"`
	Duration     time.Duration  `json:"duration_ns"`
	CacheHit     bool           `json:"cache_hit"`

	// Diagnostic explains an empty result that is not "no matches", such as
	// ErrDocsDirNotFound. It is nil for normal searches.
	Diagnostic error `json:"-"`
}

// CacheInfo reports cache state for diagnostics
type CacheInfo struct {
	Size      int               `json:"cache_size"`
	Capacity  int               `json:"max_cache_size"`
	Keys      []string          `json:"cached_searches"`
	Hits      int64             `json:"hits"`
	Misses    int64             `json:"misses"`
	Documents parser.CacheStats `json:"documents"`
}

// Searcher coordinates concurrent per-file scanning, ranking and caching
type Searcher struct {
	cfg     Config
	docs    *parser.Cache
	cache   *ResultCache
	ranker  *ranker.Ranker
	scanner *scanner.Scanner
	group   singleflight.Group

	// Most recent results, for SaveResults
	lastMu sync.Mutex
	last   []types.Result

	// generation advances on every invalidation; scans started in an older
	// generation do not populate the result cache
	genMu      sync.Mutex
	generation uint64
}

// Option configures a Searcher
type Option func(*Searcher)

// WithDocumentCache injects the parsed-document cache
func WithDocumentCache(c *parser.Cache) Option {
	return func(s *Searcher) {
		s.docs = c
	}
}

// WithResultCache injects the search result cache
func WithResultCache(c *ResultCache) Option {
	return func(s *Searcher) {
		s.cache = c
	}
}

// WithTokenizer sets the tokenizer used for similarity ranking
func WithTokenizer(t segment.Tokenizer) Option {
	return func(s *Searcher) {
		s.ranker = ranker.New(t)
	}
}

// New creates a Searcher for cfg
func New(cfg Config, opts ...Option) *Searcher {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.DocumentCacheSize <= 0 {
		cfg.DocumentCacheSize = DefaultDocumentCacheSize
	}
	if cfg.Policy == nil {
		cfg.Policy = chunker.ParagraphPolicy{}
	}

	s := &Searcher{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.docs == nil {
		s.docs = parser.NewCache(cfg.DocumentCacheSize, parser.New())
	}
	if s.cache == nil {
		s.cache = NewResultCache(cfg.CacheSize)
	}
	if s.ranker == nil {
		s.ranker = ranker.New(nil)
	}

	mode := heading.ModeStandard
	if cfg.EnhancedContext {
		mode = heading.ModeEnhanced
	}
	c := chunker.New(
		chunker.WithLoader(s.docs),
		chunker.WithPolicy(cfg.Policy),
		chunker.WithResolver(heading.NewResolver(cfg.ContextWindow, cfg.ContextRange)),
		chunker.WithContextMode(mode),
	)
	s.scanner = scanner.New(c, cfg.MaxWorkers)

	return s
}

// Config returns the effective configuration
func (s *Searcher) Config() Config {
	return s.cfg
}

// Documents returns the parsed-document cache
func (s *Searcher) Documents() *parser.Cache {
	return s.docs
}

// Search returns the blocks most similar to keywords across the documents
// directory. Keyword order and duplicates do not change the result.
//
// Problems with the directory or individual files never fail a search; they
// yield an empty or partial result with Diagnostic and Failures set. The
// returned error is non-nil only when ctx is done.
func (s *Searcher) Search(ctx context.Context, keywords []string) (*SearchResponse, error) {
	startTime := time.Now()

	keywords = NormalizeKeywords(keywords)
	if len(keywords) == 0 {
		return &SearchResponse{Keywords: keywords, Results: []types.Result{}}, nil
	}

	key := CacheKey(keywords)

	if cached, ok := s.cache.Get(key); ok {
		logger.Debug("cache hit for %v", keywords)
		s.remember(cached)
		return &SearchResponse{
			Keywords: keywords,
			Results:  cached,
			Duration: time.Since(startTime),
			CacheHit: true,
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Concurrent misses for the same keyword set share one scan. The scan is
	// detached from ctx so a caller that gives up does not fail the others.
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.search(context.WithoutCancel(ctx), key, keywords)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	resp := *res.Val.(*SearchResponse)
	resp.Keywords = keywords
	resp.Results = types.CopyResults(resp.Results)
	resp.Duration = time.Since(startTime)
	if res.Shared {
		logger.Debug("shared in-flight search for %v", keywords)
	}

	s.remember(resp.Results)
	return &resp, nil
}

// search performs an uncached search and stores the ranked results
func (s *Searcher) search(ctx context.Context, key string, keywords []string) (*SearchResponse, error) {
	logger.Section("Search")
	logger.Info("searching %s for %v", s.cfg.DocsDir, keywords)

	gen := s.currentGeneration()

	blocks, stats, err := s.scanner.ScanDirectory(ctx, s.cfg.DocsDir, keywords)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, ErrDocsDirNotFound) {
			logger.Error("documents directory %q does not exist", s.cfg.DocsDir)
		} else {
			logger.Error("failed to scan %q: %v", s.cfg.DocsDir, err)
		}
		return &SearchResponse{Results: []types.Result{}, Diagnostic: err}, nil
	}

	s.ranker.Rank(blocks, keywords)
	total := len(blocks)
	if len(blocks) > s.cfg.MaxResults {
		blocks = blocks[:s.cfg.MaxResults]
	}

	results := make([]types.Result, len(blocks))
	for i, b := range blocks {
		results[i] = b.ToResult()
	}

	if !s.store(gen, key, results) {
		logger.Debug("documents changed during search for %v, not caching", keywords)
	}

	logger.Info("search finished in %s: %d results from %d blocks in %d files (%d failed)",
		stats.Duration.Round(time.Millisecond), len(results), total, stats.FilesScanned, stats.FilesFailed)

	return &SearchResponse{
		Results:      results,
		TotalBlocks:  total,
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
		FilesFailed:  stats.FilesFailed,
		Failures:     stats.ErrorMessages,
	}, nil
}

func (s *Searcher) remember(results []types.Result) {
	s.lastMu.Lock()
	s.last = types.CopyResults(results)
	s.lastMu.Unlock()
}

// LastResults returns a copy of the most recent search's results
func (s *Searcher) LastResults() []types.Result {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	if s.last == nil {
		return []types.Result{}
	}
	return types.CopyResults(s.last)
}

// SaveResults writes the most recent results to path as indented UTF-8 JSON
func (s *Searcher) SaveResults(path string) error {
	data, err := MarshalResults(s.LastResults())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

// MarshalResults renders results as indented JSON without escaping HTML
// characters, so CJK and symbols stay readable
func MarshalResults(results []types.Result) ([]byte, error) {
	if results == nil {
		results = []types.Result{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Searcher) currentGeneration() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generation
}

// store caches results unless an invalidation happened since gen
func (s *Searcher) store(gen uint64, key string, results []types.Result) bool {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.generation != gen {
		return false
	}
	s.cache.Put(key, results)
	return true
}

func (s *Searcher) invalidate(purge func()) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.generation++
	purge()
}

// ClearCache drops all cached searches and parsed documents
func (s *Searcher) ClearCache() {
	s.invalidate(func() {
		s.cache.Purge()
		s.docs.Purge()
	})
	logger.Info("search cache cleared")
}

// CacheInfo reports the current cache state
func (s *Searcher) CacheInfo() CacheInfo {
	return CacheInfo{
		Size:      s.cache.Len(),
		Capacity:  s.cache.Capacity(),
		Keys:      s.cache.Keys(),
		Hits:      s.cache.Hits(),
		Misses:    s.cache.Misses(),
		Documents: s.docs.Stats(),
	}
}

// InvalidateDocument drops one parsed document and every cached search,
// since any of them may include blocks from it
func (s *Searcher) InvalidateDocument(path string) {
	s.invalidate(func() {
		s.docs.Invalidate(path)
		s.cache.Purge()
	})
}
