// Package types provides shared type definitions for docsearch.
//
// This package defines the domain types passed between the parser, the chunker,
// the ranker and the searcher.
//
// # Documents
//
// Document is the parsed form of one source file. It exposes paragraphs in
// order, each with its raw text and declared style name:
//
//	for _, p := range doc.Paragraphs() {
//	    fmt.Println(p.Index, p.Style, p.Text)
//	}
//
// StaticDocument is an in-memory implementation, handy for tests and for
// feeding text from other sources through the same pipeline.
//
// # Blocks and Results
//
// Block is a contiguous run of paragraphs that matched at least one query
// keyword. The ranker assigns SimilarityScore; the searcher then converts
// blocks to Result records:
//
//	result := block.ToResult()
//	// result.StartParagraph == block.StartIndex + 1
//
// Result carries exactly five fields with stable JSON names: filename,
// keywords, context, start_paragraph and content.
//
// # Validation
//
//	if err := block.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
