// Package testutil builds .docx fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Para is one paragraph of a generated document. StyleID refers to a style
// in the generated styles.xml ("Heading1".."Heading6", "Title", "Normal");
// empty means the default style.
type Para struct {
	Text    string
	StyleID string
}

// P returns a body paragraph
func P(text string) Para {
	return Para{Text: text}
}

// H returns a heading paragraph of the given level
func H(level int, text string) Para {
	return Para{Text: text, StyleID: fmt.Sprintf("Heading%d", level)}
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + wordNS + `">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading5"><w:name w:val="heading 5"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading6"><w:name w:val="heading 6"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/></w:style>
</w:styles>`

// DocumentXML renders word/document.xml for paras
func DocumentXML(paras ...Para) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, p := range paras {
		b.WriteString("<w:p>")
		if p.StyleID != "" {
			fmt.Fprintf(&b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, p.StyleID)
		}
		if p.Text != "" {
			b.WriteString(`<w:r><w:t xml:space="preserve">`)
			_ = xml.EscapeText(&b, []byte(p.Text))
			b.WriteString("</w:t></w:r>")
		}
		b.WriteString("</w:p>")
	}
	b.WriteString("<w:sectPr/></w:body></w:document>")
	return b.String()
}

// DocxBytes builds an in-memory .docx archive. parts maps archive member
// names to content; word/styles.xml is added unless present.
func DocxBytes(tb testing.TB, parts map[string]string) []byte {
	tb.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	if _, ok := parts["word/styles.xml"]; !ok {
		parts["word/styles.xml"] = stylesXML
	}

	for name, content := range parts {
		f, err := w.Create(name)
		if err != nil {
			tb.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}

	if err := w.Close(); err != nil {
		tb.Fatalf("close docx: %v", err)
	}
	return buf.Bytes()
}

// WriteDocx writes a .docx file with paras into dir and returns its path
func WriteDocx(tb testing.TB, dir, name string, paras ...Para) string {
	tb.Helper()

	data := DocxBytes(tb, map[string]string{"word/document.xml": DocumentXML(paras...)})
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFile writes raw content into dir and returns its path
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}
