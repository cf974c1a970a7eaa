package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/internal/textnorm"
)

const (
	defaultWidth   = 80
	maxWidth       = 120
	contentPreview = 200
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a9b1d6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// terminalWidth returns the width of w when it is a terminal, else 80
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	return width
}

func separator(w io.Writer, char string) string {
	return separatorStyle.Render(strings.Repeat(char, terminalWidth(w)))
}

// renderResults prints a search response for people
func renderResults(w io.Writer, resp *searcher.SearchResponse) {
	if resp.Diagnostic != nil {
		fmt.Fprintln(w, errorStyle.Render("Search failed: "+resp.Diagnostic.Error()))
		return
	}
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, warningStyle.Render("No matching content found."))
		return
	}

	header := fmt.Sprintf("Results (%d)", len(resp.Results))
	if resp.CacheHit {
		header += " [cached]"
	}
	fmt.Fprintln(w, headerStyle.Render(header))
	fmt.Fprintln(w, separator(w, "━"))

	for i, r := range resp.Results {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%d.", i+1)), infoStyle.Render(r.Filename))
		fmt.Fprintf(w, "   %s paragraph %d\n", labelStyle.Render("Location:"), r.StartParagraph)
		fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("Keywords:"), strings.Join(r.Keywords, ", "))
		if r.Context != "" {
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("Context:"), r.Context)
		}
		fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("Content:"), textnorm.Truncate(r.Content, contentPreview))

		if i < len(resp.Results)-1 {
			fmt.Fprintln(w, separator(w, "─"))
		}
	}

	if len(resp.Failures) > 0 {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d file(s) could not be read", len(resp.Failures))))
	}
}

// renderStatus prints cache and folder state
func renderStatus(w io.Writer, s *searcher.Searcher) {
	info := s.CacheInfo()
	cfg := s.Config()

	fmt.Fprintln(w, headerStyle.Render("Status"))
	fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("Documents:"), cfg.DocsDir)
	fmt.Fprintf(w, "   %s %d\n", labelStyle.Render("Cache size:"), info.Size)
	fmt.Fprintf(w, "   %s %d\n", labelStyle.Render("Max cache:"), info.Capacity)
	fmt.Fprintf(w, "   %s %d hits, %d misses\n", labelStyle.Render("Lookups:"), info.Hits, info.Misses)
	fmt.Fprintf(w, "   %s %d/%d\n", labelStyle.Render("Parsed documents:"), info.Documents.Entries, info.Documents.Capacity)
}
