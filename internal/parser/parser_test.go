package parser

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/internal/testutil"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"guide.docx", true},
		{"GUIDE.DOCX", true},
		{"dir/notes.docx", true},
		{"~$guide.docx", false},
		{"guide.doc", false},
		{"guide.pdf", false},
		{"docx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.name))
		})
	}
}

func TestParseFile_ParagraphsAndStyles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDocx(t, dir, "guide.docx",
		testutil.H(1, "1. Installation"),
		testutil.P("Download the archive."),
		testutil.P(""),
		testutil.Para{Text: "Guide", StyleID: "Title"},
		testutil.Para{Text: "unknown style", StyleID: "NoSuchStyle"},
	)

	doc, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())

	paras := doc.Paragraphs()
	require.Len(t, paras, 5)

	assert.Equal(t, "1. Installation", paras[0].Text)
	assert.Equal(t, "Heading 1", paras[0].Style)
	assert.Equal(t, "Download the archive.", paras[1].Text)
	assert.Equal(t, "Normal", paras[1].Style)
	assert.Equal(t, "", paras[2].Text)
	assert.Equal(t, "Title", paras[3].Style)
	assert.Equal(t, "Normal", paras[4].Style, "unknown style IDs fall back to the default style")

	for i, p := range paras {
		assert.Equal(t, i, p.Index)
	}
}

func TestParse_RunsTabsAndBreaks(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">world </w:t></w:r><w:r><w:br/><w:t>again</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:delText>deleted</w:delText><w:t>kept</w:t></w:r></w:p>
</w:body></w:document>`

	data := testutil.DocxBytes(t, map[string]string{"word/document.xml": docXML})
	doc, err := New().Parse("inline.docx", data)
	require.NoError(t, err)

	paras := doc.Paragraphs()
	require.Len(t, paras, 2, "table paragraphs are not body paragraphs")
	assert.Equal(t, "Hello\tworld \nagain", paras[0].Text)
	assert.Equal(t, "kept", paras[1].Text)
}

func TestParse_WithoutStylesPart(t *testing.T) {
	docXML := testutil.DocumentXML(testutil.H(2, "Setup"), testutil.P("body"))

	// An empty styles part leaves no style table
	data := testutil.DocxBytes(t, map[string]string{
		"word/document.xml": docXML,
		"word/styles.xml":   "",
	})

	doc, err := New().Parse("nostyles.docx", data)
	require.NoError(t, err)

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "Heading2", paras[0].Style, "style IDs are used verbatim without a style table")
	assert.Equal(t, DefaultStyle, paras[1].Style)
}

func TestParse_Errors(t *testing.T) {
	p := New()

	_, err := p.Parse("bad.docx", []byte("not a zip file"))
	assert.ErrorIs(t, err, ErrInvalidArchive)

	data := testutil.DocxBytes(t, map[string]string{"word/other.xml": "<x/>"})
	_, err = p.Parse("empty.docx", data)
	assert.ErrorIs(t, err, ErrNoDocumentPart)

	data = testutil.DocxBytes(t, map[string]string{"word/document.xml": "<w:document><w:body><w:p>"})
	_, err = p.Parse("broken.docx", data)
	assert.ErrorIs(t, err, ErrMalformedXML)

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Heading 1", displayName("heading 1"))
	assert.Equal(t, "Title", displayName("title"))
	assert.Equal(t, "My Custom", displayName("My Custom"))
	assert.Equal(t, "标题 1", displayName("标题 1"))
	assert.Equal(t, "", displayName(""))
}

func TestCache_LoadReusesDocument(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDocx(t, dir, "a.docx", testutil.P("alpha"))

	c := NewCache(4, nil)

	first, err := c.Load(path)
	require.NoError(t, err)
	second, err := c.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 4, stats.Capacity)
}

func TestCache_ReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDocx(t, dir, "a.docx", testutil.P("alpha"))

	c := NewCache(4, nil)
	first, err := c.Load(path)
	require.NoError(t, err)

	testutil.WriteDocx(t, dir, "a.docx", testutil.P("beta"), testutil.P("gamma"))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := c.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Paragraphs(), 2)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteDocx(t, dir, "a.docx", testutil.P("a"))
	b := testutil.WriteDocx(t, dir, "b.docx", testutil.P("b"))
	cc := testutil.WriteDocx(t, dir, "c.docx", testutil.P("c"))

	c := NewCache(2, nil)
	for _, p := range []string{a, b, a, cc} {
		_, err := c.Load(p)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, c.Len())
	// b was least recently used when c was added
	assert.False(t, c.Invalidate(b))
	assert.True(t, c.Invalidate(a))
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCache_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDocx(t, dir, "a.docx", testutil.P("alpha"))

	c := NewCache(4, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := c.Load(path)
			assert.NoError(t, err)
			assert.Len(t, doc.Paragraphs(), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

func TestCache_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(0, nil)

	_, err := c.Load(filepath.Join(dir, "missing.docx"))
	assert.Error(t, err)

	bad := testutil.WriteFile(t, dir, "bad.docx", "garbage")
	_, err = c.Load(bad)
	assert.ErrorIs(t, err, ErrInvalidArchive)
	assert.Zero(t, c.Len(), "failed parses are not cached")
	assert.Equal(t, DefaultCacheSize, c.Stats().Capacity)
}
