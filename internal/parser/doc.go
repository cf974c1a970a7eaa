// Package parser reads paragraph sequences out of .docx files.
//
// Only the body paragraph sequence of word/document.xml is extracted: each
// w:p directly under w:body becomes one types.Paragraph carrying its text and
// the display name of its paragraph style, resolved through word/styles.xml.
// Built-in style names are shown the way word processors show them
// ("heading 1" becomes "Heading 1"); paragraphs without a style get the
// document's default paragraph style, normally "Normal".
//
// # Basic Usage
//
//	p := parser.New()
//	doc, err := p.ParseFile("/docs/guide.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, para := range doc.Paragraphs() {
//	    fmt.Printf("[%s] %s\n", para.Style, para.Text)
//	}
//
// # Caching
//
// Cache memoizes parsed documents by absolute path with least-recently-used
// eviction. Entries are revalidated against the file's modification time and
// size on every Load, and concurrent first loads of the same path share one
// parse:
//
//	cache := parser.NewCache(256, parser.New())
//	doc, err := cache.Load(path)
//
// Invalidate and Purge drop entries explicitly, for example when a file
// watcher reports a change.
//
// # Error Handling
//
// Unreadable files, archives that are not zip files (ErrInvalidArchive),
// archives without word/document.xml (ErrNoDocumentPart) and broken XML
// (ErrMalformedXML) are returned as errors. Callers scanning many files are
// expected to log and skip them.
package parser
