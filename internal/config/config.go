// Package config loads docsearch settings from defaults, an optional TOML
// file and DOCSEARCH_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/docsearch/internal/chunker"
	"github.com/dshills/docsearch/internal/heading"
	"github.com/dshills/docsearch/internal/searcher"
)

// ErrInvalidConfig is returned when a setting is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override
const EnvPrefix = "DOCSEARCH_"

// Default values
const (
	DefaultDocsDir          = "docs"
	DefaultHeadingThreshold = chunker.DefaultHeadingThreshold
	DefaultResultsFile      = "search_results.json"
)

// Config holds every docsearch setting
type Config struct {
	DocsDir           string   `toml:"docs_dir"`
	MaxWorkers        int      `toml:"max_workers"`
	MaxResults        int      `toml:"max_results"`
	CacheSize         int      `toml:"cache_size"`
	DocumentCacheSize int      `toml:"document_cache_size"`
	ContextWindow     int      `toml:"context_window"`
	ContextRange      int      `toml:"context_range"`
	EnhancedContext   bool     `toml:"enhanced_context"`
	BoundaryPolicy    string   `toml:"boundary_policy"`
	HeadingThreshold  float64  `toml:"heading_threshold"`
	Watch             bool     `toml:"watch"`
	ResultsFile       string   `toml:"results_file"`
	Stopwords         []string `toml:"stopwords"`
	Verbose           bool     `toml:"verbose"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DocsDir:           DefaultDocsDir,
		MaxWorkers:        searcher.DefaultMaxWorkers,
		MaxResults:        searcher.DefaultMaxResults,
		CacheSize:         searcher.DefaultCacheSize,
		DocumentCacheSize: searcher.DefaultDocumentCacheSize,
		ContextWindow:     heading.DefaultWindow,
		ContextRange:      heading.DefaultRange,
		EnhancedContext:   true,
		BoundaryPolicy:    chunker.PolicyParagraph,
		HeadingThreshold:  DefaultHeadingThreshold,
		ResultsFile:       DefaultResultsFile,
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped
// when path is empty) and the environment, then validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from DOCSEARCH_* environment variables.
// Stopwords are comma-separated.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"DOCS_DIR":        &c.DocsDir,
		"BOUNDARY_POLICY": &c.BoundaryPolicy,
		"RESULTS_FILE":    &c.ResultsFile,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_WORKERS":         &c.MaxWorkers,
		"MAX_RESULTS":         &c.MaxResults,
		"CACHE_SIZE":          &c.CacheSize,
		"DOCUMENT_CACHE_SIZE": &c.DocumentCacheSize,
		"CONTEXT_WINDOW":      &c.ContextWindow,
		"CONTEXT_RANGE":       &c.ContextRange,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, name, v)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"ENHANCED_CONTEXT": &c.EnhancedContext,
		"WATCH":            &c.Watch,
		"VERBOSE":          &c.Verbose,
	}
	for name, dst := range bools {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, EnvPrefix, name, v)
		}
		*dst = b
	}

	if v, ok := lookup("HEADING_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sHEADING_THRESHOLD=%q is not a number", ErrInvalidConfig, EnvPrefix, v)
		}
		c.HeadingThreshold = f
	}

	if v, ok := lookup("STOPWORDS"); ok {
		c.Stopwords = nil
		for _, w := range strings.Split(v, ",") {
			if w = strings.TrimSpace(w); w != "" {
				c.Stopwords = append(c.Stopwords, w)
			}
		}
	}

	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DocsDir) == "" {
		return fmt.Errorf("%w: docs_dir is required", ErrInvalidConfig)
	}

	positive := []struct {
		name  string
		value int
	}{
		{"max_workers", c.MaxWorkers},
		{"max_results", c.MaxResults},
		{"cache_size", c.CacheSize},
		{"document_cache_size", c.DocumentCacheSize},
		{"context_window", c.ContextWindow},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.ContextRange < 0 {
		return fmt.Errorf("%w: context_range must not be negative, got %d", ErrInvalidConfig, c.ContextRange)
	}
	if c.HeadingThreshold <= 0 || c.HeadingThreshold > 1 {
		return fmt.Errorf("%w: heading_threshold must be in (0, 1], got %g", ErrInvalidConfig, c.HeadingThreshold)
	}
	if _, err := chunker.PolicyByName(c.BoundaryPolicy, c.HeadingThreshold); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.ResultsFile) == "" {
		return fmt.Errorf("%w: results_file is required", ErrInvalidConfig)
	}

	return nil
}

// SearcherConfig converts c into the searcher's configuration
func (c *Config) SearcherConfig() (searcher.Config, error) {
	policy, err := chunker.PolicyByName(c.BoundaryPolicy, c.HeadingThreshold)
	if err != nil {
		return searcher.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return searcher.Config{
		DocsDir:           c.DocsDir,
		MaxWorkers:        c.MaxWorkers,
		MaxResults:        c.MaxResults,
		CacheSize:         c.CacheSize,
		DocumentCacheSize: c.DocumentCacheSize,
		ContextWindow:     c.ContextWindow,
		ContextRange:      c.ContextRange,
		EnhancedContext:   c.EnhancedContext,
		Policy:            policy,
	}, nil
}

// ContextMode names the context mode selected by EnhancedContext
func (c *Config) ContextMode() heading.Mode {
	if c.EnhancedContext {
		return heading.ModeEnhanced
	}
	return heading.ModeStandard
}
