// Package scanner fans a query out over every document in a directory.
//
// ScanDirectory lists the directory once, then runs the chunker on each
// supported file in a bounded errgroup. It waits for every task before
// returning, so callers only ever see the complete block set of a scan:
//
//	s := scanner.New(chunker.New(), 4)
//	blocks, stats, err := s.ScanDirectory(ctx, "/docs", []string{"docker"})
//	if errors.Is(err, scanner.ErrDirectoryNotFound) {
//	    // report and return an empty result
//	}
//
// Each task writes only its own result slot, and slots are concatenated in
// listing order after the barrier, so the block order is deterministic.
//
// # Failure Isolation
//
// A file that cannot be read or parsed is logged, counted in
// Statistics.FilesFailed and contributes no blocks. It never cancels its
// siblings. Only cancellation of the caller's context aborts a scan.
package scanner
