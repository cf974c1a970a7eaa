// Package searcher coordinates keyword searches over a directory of .docx
// documents.
//
// A search normalizes the keyword set, consults an LRU result cache keyed by
// the sorted keyword set, and on a miss scans the directory concurrently,
// ranks every matching block by Jaccard similarity and keeps the top
// MaxResults:
//
//	s := searcher.New(searcher.Config{DocsDir: "/docs", MaxResults: 10})
//
//	resp, err := s.Search(ctx, []string{"docker", "logs"})
//	if err != nil {
//	    return err // ctx was canceled
//	}
//	if resp.Diagnostic != nil {
//	    log.Printf("search degraded: %v", resp.Diagnostic)
//	}
//	for _, r := range resp.Results {
//	    fmt.Printf("%s #%d %s\n", r.Filename, r.StartParagraph, r.Context)
//	}
//
// # Caching
//
// Two caches are involved. ResultCache memoizes ranked results per keyword
// set and never changes on its own; parsed documents are cached separately
// by the parser package and revalidated against file modification time.
// ClearCache empties both, and InvalidateDocument drops one document plus
// every cached search.
//
// Concurrent misses for the same keyword set are collapsed into one scan.
//
// # Failure Handling
//
// A missing documents directory yields an empty result with Diagnostic set
// to ErrDocsDirNotFound. Unreadable files are skipped and listed in Failures.
// Neither is cached.
package searcher
