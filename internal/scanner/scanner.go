package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docsearch/internal/chunker"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/parser"
	"github.com/dshills/docsearch/pkg/types"
)

// ErrDirectoryNotFound is returned when the documents directory does not exist
var ErrDirectoryNotFound = errors.New("documents directory not found")

// DefaultWorkers is the number of files processed concurrently when none is configured
const DefaultWorkers = 4

// Scanner runs the chunker over every document in a directory
type Scanner struct {
	chunker *chunker.Chunker

	// Worker pool configuration
	workers int
}

// Statistics describes one directory scan
type Statistics struct {
	FilesScanned  int
	FilesSkipped  int
	FilesFailed   int
	BlocksFound   int
	Duration      time.Duration
	ErrorMessages []string
}

// fileOutcome is the result slot of one file task
type fileOutcome struct {
	name   string
	blocks []*types.Block
	err    error
}

// New creates a Scanner. Non-positive workers selects DefaultWorkers.
func New(c *chunker.Chunker, workers int) *Scanner {
	if c == nil {
		c = chunker.New()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scanner{chunker: c, workers: workers}
}

// Workers returns the worker pool size
func (s *Scanner) Workers() int {
	return s.workers
}

// ScanDirectory lists dir (non-recursively) and chunks every supported file
// concurrently. It returns only after every file task has finished; blocks
// are ordered by file listing order, then by position within the file.
//
// A file that fails to load contributes no blocks and is reported in the
// statistics. The returned error is ErrDirectoryNotFound (or another listing
// error) or the context's error if ctx is done.
func (s *Scanner) ScanDirectory(ctx context.Context, dir string, keywords []string) ([]*types.Block, *Statistics, error) {
	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}

	files, skipped, err := discoverFiles(dir)
	if err != nil {
		return nil, stats, err
	}
	stats.FilesSkipped = skipped

	outcomes := make([]fileOutcome, len(files))
	var failed int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, name := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			blocks, err := s.chunkFile(gctx, dir, name, keywords)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				atomic.AddInt32(&failed, 1)
				logger.Warn("skipping %s: %v", name, err)
			}
			outcomes[i] = fileOutcome{name: name, blocks: blocks, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	var blocks []*types.Block
	for _, out := range outcomes {
		if out.err != nil {
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", out.name, out.err))
			continue
		}
		blocks = append(blocks, out.blocks...)
	}

	stats.FilesScanned = len(files)
	stats.FilesFailed = int(failed)
	stats.BlocksFound = len(blocks)
	stats.Duration = time.Since(startTime)

	return blocks, stats, nil
}

// chunkFile runs the chunker on one file and turns a panic into an error so
// one malformed document cannot take down the scan
func (s *Scanner) chunkFile(ctx context.Context, dir, name string, keywords []string) (blocks []*types.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("panic while processing file: %v", r)
		}
	}()
	return s.chunker.ChunkFile(ctx, dir, name, keywords)
}

// discoverFiles lists the supported documents in dir in name order and counts
// the regular files that were skipped
func discoverFiles(dir string) ([]string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, 0, fmt.Errorf("failed to list directory: %w", err)
	}

	var (
		files   []string
		skipped int
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !parser.Supported(entry.Name()) {
			skipped++
			continue
		}
		files = append(files, entry.Name())
	}

	return files, skipped, nil
}

// CountDocuments returns the number of supported documents in dir
func CountDocuments(dir string) (int, error) {
	files, _, err := discoverFiles(dir)
	return len(files), err
}
