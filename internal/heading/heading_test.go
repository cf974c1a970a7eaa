package heading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/pkg/types"
)

// longProse is lowercase, keyword free and longer than 200 characters, so it
// never scores as a heading nor qualifies as a fallback excerpt.
var longProse = strings.TrimSpace(strings.Repeat("lorem ipsum ", 20))

// mediumProse is lowercase prose between 100 and 200 characters
var mediumProse = strings.TrimSpace(strings.Repeat("dolor sit amet ", 8))

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		style string
		text  string
		want  float64
	}{
		{"numbered heading style", "Heading 1", "1. Installation", 0.75},
		{"title style", "Title", "abc", 0.35},
		{"cjk numbered keyword", "Normal", "一、概述", 0.30},
		{"capitalized sentence", "Normal", "Run docker compose up to start the stack.", 0.15},
		{"long lowercase prose", "Normal", longProse, 0},
		{"chinese title style", "自定义标题", "abc", 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.style, tt.text), 1e-9)
		})
	}
}

func TestScoreShapeSignal(t *testing.T) {
	open := Score("Normal", "see below")
	closed := Score("Normal", "see it.")
	fullWidth := Score("Normal", "见下文。")

	assert.InDelta(t, WeightShape, open, 1e-9)
	assert.Zero(t, closed)
	assert.Zero(t, fullWidth)
}

func TestScoreLengthSignalBounds(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"abcdefgh.", 0},
		{"abcdefghi.", WeightLength},
		{strings.Repeat("a", 99) + ".", WeightLength},
		{strings.Repeat("a", 100) + ".", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Score("Normal", tt.text), 1e-9, "%d runes", len(tt.text))
	}
}

func TestScoreBounds(t *testing.T) {
	styles := []string{"", "Normal", "Heading 1", "Title", "标题 2"}
	texts := []string{
		"", "1", "1.1.1 安装 Installation overview", "IV. Summary",
		"一、背景", longProse, mediumProse, "A. configuration", "x",
	}

	for _, style := range styles {
		for _, text := range texts {
			s := Score(style, text)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1. Intro", 1},
		{"2.1 Setup", 2},
		{"3.2.1 Volumes", 3},
		{"1.2.3.4.5.6.7.8 Deep", MaxLevel},
		{"三、背景", 1},
		{"十二", 1},
		{"A. Scope", 2},
		{"IV. Results", 2},
		{"Installation", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Level(tt.text)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, MaxLevel)
		})
	}
}

func TestEvaluate(t *testing.T) {
	c, ok := Evaluate(types.Paragraph{Index: 4, Text: "  2.1   Docker setup ", Style: "Heading 2"})
	require.True(t, ok)
	assert.Equal(t, 4, c.Index)
	assert.Equal(t, "2.1 Docker setup", c.Text)
	assert.Equal(t, 2, c.Level)

	_, ok = Evaluate(types.Paragraph{Text: " *** "})
	assert.False(t, ok, "empty after normalization")

	_, ok = Evaluate(types.Paragraph{Text: longProse})
	assert.False(t, ok, "zero score")
}

func installDoc() *types.StaticDocument {
	return types.NewStaticDocument("install.docx",
		"1. Installation",
		"download the archive from the release page",
		"Run docker compose up to start the stack.",
		"short",
		"verify the containers are healthy afterwards",
	).SetStyle(0, "Heading 1")
}

func TestResolveStandardBreadcrumb(t *testing.T) {
	r := NewResolver(DefaultWindow, DefaultRange)

	got := r.Resolve(installDoc(), 2, ModeStandard)
	assert.Equal(t, "1. Installation > Run docker compose up to start the stack.", got)
}

func TestResolveOneHeadingPerLevel(t *testing.T) {
	doc := types.NewStaticDocument("deep.docx",
		"1. Overview",
		"1.1 Setup",
		"1.1.1 Compose",
		"1.1.1.1 Volumes",
		longProse,
	).SetStyle(0, "Heading 1").SetStyle(1, "Heading 2").SetStyle(2, "Heading 3").SetStyle(3, "Heading 4")

	r := NewResolver(DefaultWindow, DefaultRange)
	got := r.Resolve(doc, 4, ModeStandard)

	assert.Equal(t, "1. Overview > 1.1 Setup > 1.1.1 Compose", got)
}

func TestResolveWindowLimit(t *testing.T) {
	texts := []string{"1. Installation"}
	for i := 0; i < 5; i++ {
		texts = append(texts, longProse)
	}
	doc := types.NewStaticDocument("window.docx", texts...).SetStyle(0, "Heading 1")

	// The heading is five paragraphs back, outside a window of three
	narrow := NewResolver(3, 0)
	assert.Equal(t, Placeholder, narrow.Resolve(doc, 5, ModeStandard))

	wide := NewResolver(6, 0)
	assert.Equal(t, "1. Installation", wide.Resolve(doc, 5, ModeStandard))
}

func TestResolveFallbackExcerpt(t *testing.T) {
	doc := types.NewStaticDocument("prose.docx", mediumProse, longProse)

	r := NewResolver(DefaultWindow, DefaultRange)
	got := r.Resolve(doc, 1, ModeStandard)

	assert.Equal(t, string([]rune(mediumProse)[:50])+"...", got)
}

func TestResolveFallbackSkipsBullets(t *testing.T) {
	bullet := "- " + mediumProse
	doc := types.NewStaticDocument("bullets.docx", mediumProse, bullet, longProse)

	r := NewResolver(DefaultWindow, DefaultRange)
	got := r.Resolve(doc, 2, ModeStandard)

	// The bullet at index 1 is skipped in favor of the prose at index 0
	assert.Equal(t, string([]rune(mediumProse)[:50])+"...", got)
}

func TestResolvePlaceholder(t *testing.T) {
	doc := types.NewStaticDocument("flat.docx", longProse, longProse, longProse)

	r := NewResolver(DefaultWindow, DefaultRange)
	for i := 0; i < 3; i++ {
		assert.Equal(t, Placeholder, r.Resolve(doc, i, ModeStandard))
	}

	assert.Equal(t, Placeholder, r.Resolve(doc, -1, ModeStandard))
	assert.Equal(t, Placeholder, r.Resolve(doc, 3, ModeEnhanced))
}

func TestResolveEnhanced(t *testing.T) {
	r := NewResolver(DefaultWindow, 2)

	got := r.Resolve(installDoc(), 2, ModeEnhanced)

	want := "1. Installation > Run docker compose up to start the stack." +
		" >> preceding: 1. Installation" +
		" | preceding: download the archive from the ..." +
		" | following: verify the containers are heal..."
	assert.Equal(t, want, got)
}

func TestResolveEnhancedOmitsPlaceholder(t *testing.T) {
	r := NewResolver(DefaultWindow, 1)

	doc := types.NewStaticDocument("flat.docx", longProse, longProse)
	got := r.Resolve(doc, 1, ModeEnhanced)

	assert.True(t, strings.HasPrefix(got, "preceding: lorem ipsum"), got)
	assert.NotContains(t, got, Placeholder)
	assert.NotContains(t, got, " >> ")

	single := types.NewStaticDocument("one.docx", longProse)
	assert.Equal(t, Placeholder, r.Resolve(single, 0, ModeEnhanced))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "standard", ModeStandard.String())
	assert.Equal(t, "enhanced", ModeEnhanced.String())
}
