package heading

import (
	"regexp"
	"strings"

	"github.com/dshills/docsearch/internal/textnorm"
	"github.com/dshills/docsearch/pkg/types"
)

// Signal weights
const (
	WeightHeadingStyle = 0.4
	WeightTitleStyle   = 0.3
	WeightDecimal      = 0.15
	WeightCJKNumeral   = 0.15
	WeightLatinLetter  = 0.10
	WeightRoman        = 0.10
	WeightLength       = 0.05
	WeightKeyword      = 0.10
	WeightShape        = 0.05

	// MaxLevel is the least significant heading level
	MaxLevel = 6

	// DefaultLevel is assigned to text without a recognized numbering prefix
	DefaultLevel = 3
)

// numberingPatterns are checked in order; the first match wins
var numberingPatterns = []struct {
	re     *regexp.Regexp
	weight float64
}{
	{regexp.MustCompile(`^[0-9]+(\.[0-9]+)*[、.]?\s*\S`), WeightDecimal},
	{regexp.MustCompile(`^[一二三四五六七八九十]+[、.]?\s*\S`), WeightCJKNumeral},
	{regexp.MustCompile(`^[A-Z]+[、.]?\s*\S`), WeightLatinLetter},
	{regexp.MustCompile(`^[IVX]+[、.]?\s*\S`), WeightRoman},
}

var (
	decimalPrefix    = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)*)`)
	cjkNumeralPrefix = regexp.MustCompile(`^[一二三四五六七八九十]+`)
	letterPrefix     = regexp.MustCompile(`^[A-Z]+[、.]`)
)

// structuralKeywords mark text that commonly names a document section
var structuralKeywords = []string{
	"概述", "简介", "背景", "目标", "方法", "步骤", "流程", "配置", "安装",
	"部署", "管理", "监控", "故障", "排查", "总结", "结论",
	"overview", "introduction", "background", "objective", "method", "process",
	"configuration", "installation", "deployment", "management", "monitoring",
	"troubleshooting", "summary",
}

// Candidate is a paragraph that scored as a possible heading
type Candidate struct {
	Index int
	Text  string // Normalized text
	Score float64
	Level int
}

// Score returns how likely a paragraph with the given style name and
// normalized text is a section heading, in [0, 1].
func Score(style, text string) float64 {
	score := styleSignal(style) + numberingSignal(text) + contentSignal(text) + shapeSignal(text)
	if score > 1.0 {
		return 1.0
	}
	return score
}

func styleSignal(style string) float64 {
	if strings.HasPrefix(style, "Heading") {
		return WeightHeadingStyle
	}
	if strings.Contains(style, "Title") || strings.Contains(style, "标题") {
		return WeightTitleStyle
	}
	return 0
}

func numberingSignal(text string) float64 {
	for _, p := range numberingPatterns {
		if p.re.MatchString(text) {
			return p.weight
		}
	}
	return 0
}

func contentSignal(text string) float64 {
	var score float64

	if n := textnorm.Len(text); n >= 10 && n <= 100 {
		score += WeightLength
	}

	lower := strings.ToLower(text)
	for _, kw := range structuralKeywords {
		if strings.Contains(lower, kw) {
			score += WeightKeyword
			break
		}
	}

	return score
}

func shapeSignal(text string) float64 {
	if textnorm.Len(text) >= 50 {
		return 0
	}
	if strings.HasSuffix(text, "。") || strings.HasSuffix(text, ".") || strings.HasSuffix(text, "．") {
		return 0
	}
	return WeightShape
}

// Level infers the hierarchical level of heading text, 1 being the most
// significant. The result is always in [1, MaxLevel].
func Level(text string) int {
	if m := decimalPrefix.FindStringSubmatch(text); m != nil {
		level := strings.Count(m[1], ".") + 1
		if level > MaxLevel {
			return MaxLevel
		}
		return level
	}

	if cjkNumeralPrefix.MatchString(text) {
		return 1
	}

	if letterPrefix.MatchString(text) {
		return 2
	}

	return DefaultLevel
}

// Evaluate normalizes a paragraph and scores it. ok is false when the
// paragraph is empty after normalization or scores 0.
func Evaluate(p types.Paragraph) (c Candidate, ok bool) {
	text := textnorm.Normalize(p.Text)
	if text == "" {
		return Candidate{}, false
	}

	score := Score(p.Style, text)
	if score <= 0 {
		return Candidate{}, false
	}

	return Candidate{
		Index: p.Index,
		Text:  text,
		Score: score,
		Level: Level(text),
	}, true
}
