// Package chunker segments documents into blocks and keeps the blocks that
// mention a query keyword.
//
// A block is a contiguous run of paragraphs starting at a block-start
// paragraph and ending before the next one. Its content is the normalized
// text of its non-empty paragraphs joined with newlines.
//
// # Boundary Policies
//
// Which paragraphs start a block is decided by a BoundaryPolicy:
//
//   - ParagraphPolicy (default): every non-empty paragraph starts a block,
//     so each block is a single paragraph.
//   - HeadingPolicy: only paragraphs scoring at least Threshold as headings
//     start a block, so each block is a section.
//
// # Keyword Matching
//
// A keyword matches when it occurs verbatim in the block content. Matching
// is case-sensitive and does not tokenize, so "dock" matches "docker". Blocks
// without a match are dropped.
//
// # Usage
//
//	c := chunker.New(
//	    chunker.WithLoader(parser.NewCache(256, parser.New())),
//	    chunker.WithContextMode(heading.ModeEnhanced),
//	)
//
//	blocks, err := c.ChunkFile(ctx, "/docs", "guide.docx", []string{"docker"})
//
// ChunkFile returns no blocks and no error for files that are not .docx or
// that are lock artifacts ("~$guide.docx").
package chunker
