package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/docsearch/pkg/types"
)

const (
	// Extension is the file extension of supported documents
	Extension = ".docx"

	// LockPrefix marks temporary lock files written by word processors
	LockPrefix = "~$"

	// DefaultStyle is used when a document declares no default paragraph style
	DefaultStyle = "Normal"

	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// Parser errors
var (
	ErrInvalidArchive = errors.New("not a valid docx archive")
	ErrNoDocumentPart = errors.New("docx archive has no " + documentPart)
	ErrMalformedXML   = errors.New("malformed document xml")
)

// Supported reports whether name is a searchable document: a .docx file that
// is not a lock artifact.
func Supported(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, LockPrefix) {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), Extension)
}

// DocxDocument is a parsed .docx file
type DocxDocument struct {
	path       string
	paragraphs []types.Paragraph
}

// Path implements types.Document
func (d *DocxDocument) Path() string {
	return d.path
}

// Paragraphs implements types.Document
func (d *DocxDocument) Paragraphs() []types.Paragraph {
	return d.paragraphs
}

// Parser reads body paragraphs and their style names from .docx files
type Parser struct{}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{}
}

// ParseFile parses the .docx file at filePath
func (p *Parser) ParseFile(filePath string) (*DocxDocument, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.Parse(filePath, content)
}

// Load implements the chunker's document loader
func (p *Parser) Load(filePath string) (types.Document, error) {
	return p.ParseFile(filePath)
}

// Parse parses .docx content. filePath is only recorded on the document.
func (p *Parser) Parse(filePath string, content []byte) (*DocxDocument, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	docXML, err := readPart(reader, documentPart)
	if err != nil {
		return nil, err
	}
	if docXML == nil {
		return nil, ErrNoDocumentPart
	}

	// Styles are optional; without them style IDs are used as names
	styles := newStyleTable()
	if stylesXML, err := readPart(reader, stylesPart); err == nil && stylesXML != nil {
		styles = parseStyles(stylesXML)
	}

	paragraphs, err := parseBody(docXML, styles)
	if err != nil {
		return nil, err
	}

	return &DocxDocument{path: filePath, paragraphs: paragraphs}, nil
}

// readPart returns the content of the named archive member, or nil if absent
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}

		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		return content, nil
	}
	return nil, nil
}

// parseBody walks word/document.xml and collects the paragraphs that are
// direct children of w:body. Paragraphs nested in tables, text boxes or
// other containers are not part of the body sequence.
func parseBody(content []byte, styles *styleTable) ([]types.Paragraph, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		paragraphs []types.Paragraph
		stack      []string
		text       strings.Builder
		styleID    string
		inPara     bool
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)

			switch {
			case name == "p" && parent == "body" && len(stack) == 3:
				inPara = true
				text.Reset()
				styleID = ""
			case !inPara:
			case name == "pStyle" && parent == "pPr":
				styleID = attr(t, "val")
			case name == "t":
				inText = true
			case name == "tab":
				text.WriteByte('\t')
			case name == "br" || name == "cr":
				text.WriteByte('\n')
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch {
			case name == "t":
				inText = false
			case name == "p" && inPara && len(stack) == 2:
				paragraphs = append(paragraphs, types.Paragraph{
					Index: len(paragraphs),
					Text:  text.String(),
					Style: styles.name(styleID),
				})
				inPara = false
			}

		case xml.CharData:
			if inPara && inText {
				text.Write(t)
			}
		}
	}

	return paragraphs, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
