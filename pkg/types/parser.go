package types

// Paragraph is one paragraph of a parsed document
type Paragraph struct {
	Index int    // Position in the document (0-based)
	Text  string // Raw text as stored in the document
	Style string // Declared style name (e.g. "Heading 1", "Normal")
}

// Document is a parsed, paragraph-oriented document.
// Formats other than .docx can be searched by implementing this interface.
type Document interface {
	// Path returns the file the document was parsed from
	Path() string

	// Paragraphs returns all paragraphs in document order
	Paragraphs() []Paragraph
}

// StaticDocument is an in-memory Document
type StaticDocument struct {
	Source string
	Paras  []Paragraph
}

// NewStaticDocument builds a document from plain texts with the given style
// applied to every paragraph. Indexes are assigned in order.
func NewStaticDocument(source string, texts ...string) *StaticDocument {
	doc := &StaticDocument{Source: source, Paras: make([]Paragraph, len(texts))}
	for i, text := range texts {
		doc.Paras[i] = Paragraph{Index: i, Text: text, Style: "Normal"}
	}
	return doc
}

// Path implements Document
func (d *StaticDocument) Path() string {
	return d.Source
}

// Paragraphs implements Document
func (d *StaticDocument) Paragraphs() []Paragraph {
	return d.Paras
}

// SetStyle sets the style name of paragraph i and returns the document for chaining
func (d *StaticDocument) SetStyle(i int, style string) *StaticDocument {
	if i >= 0 && i < len(d.Paras) {
		d.Paras[i].Style = style
	}
	return d
}
