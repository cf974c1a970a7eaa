package parser

import (
	"encoding/xml"
	"strings"
)

// stylesXML mirrors the parts of word/styles.xml we need
type stylesXML struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Default string `xml:"default,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// styleTable maps paragraph style IDs to display names
type styleTable struct {
	names        map[string]string
	defaultStyle string
}

func newStyleTable() *styleTable {
	return &styleTable{
		names:        make(map[string]string),
		defaultStyle: DefaultStyle,
	}
}

func parseStyles(content []byte) *styleTable {
	table := newStyleTable()

	var doc stylesXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return table
	}

	for _, s := range doc.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		name := displayName(s.Name.Val)
		if name == "" {
			name = s.StyleID
		}
		table.names[s.StyleID] = name
		if s.Default == "1" || s.Default == "true" {
			table.defaultStyle = name
		}
	}

	return table
}

// name resolves a style ID. Unknown or empty IDs resolve to the default
// paragraph style, unless no style table was available at all.
func (t *styleTable) name(styleID string) string {
	if styleID == "" {
		return t.defaultStyle
	}
	if name, ok := t.names[styleID]; ok {
		return name
	}
	if len(t.names) == 0 {
		return styleID
	}
	return t.defaultStyle
}

// displayName converts built-in lowercase style names ("heading 1",
// "title") to the names word processors show ("Heading 1", "Title").
// Custom names are returned unchanged.
func displayName(name string) string {
	if name == "" || name != strings.ToLower(name) {
		return name
	}
	for _, r := range name {
		if r > 0x7f {
			return name
		}
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
