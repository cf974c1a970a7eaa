// Package heading detects section headings in paragraph sequences and builds
// the context string that tells a reader where in a document a block lives.
//
// # Scoring
//
// Score adds four independent signals and clamps the sum to 1.0:
//
//   - Style: a style name starting with "Heading" adds 0.4; a name containing
//     "Title" or "标题" adds 0.3.
//   - Numbering: decimal ("1.2.3"), CJK numeral ("三、"), uppercase letter
//     ("A.") or Roman numeral prefixes followed by content. First match wins.
//   - Content: 10 to 100 characters adds 0.05; a structural keyword such as
//     "installation" or "概述" adds 0.10.
//   - Shape: fewer than 50 characters without a closing full stop adds 0.05.
//
// Level is independent of the score. Decimal numbering maps to its depth
// ("2.1" is level 2), CJK numerals to 1, uppercase letters to 2 and anything
// else to 3. Levels never leave [1, 6].
//
// # Context
//
// Resolver builds context in one of two modes:
//
//	r := heading.NewResolver(heading.DefaultWindow, heading.DefaultRange)
//	ctx := r.Resolve(doc, 12, heading.ModeStandard)
//	// "1. Installation > 1.2 Docker setup"
//
// Standard mode walks back over a bounded window, keeps one heading per level
// (most significant levels first, up to three) and joins them in document
// order with " > ". Without headings it falls back to an excerpt of the
// nearest prose paragraph, then to Placeholder.
//
// Enhanced mode appends "preceding:" and "following:" previews of adjacent
// paragraphs after " >> ".
//
// When many lookups hit the same document, compute an Analysis once and call
// ResolveAnalysis.
package heading
