package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/keywords"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/internal/watcher"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Ask questions interactively",
	Long: `Reads questions line by line, extracts keywords, searches and prints the
results. The results of each search are written to the configured results
file. Enter "status" for cache state, "clear" to drop caches and "quit" or
"exit" to leave.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	srch, extractor, err := newServices(cfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if cfg.Watch {
		w, err := watcher.New(cfg.DocsDir, srch)
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			go func() { _ = w.Run(ctx) }()
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("docsearch interactive mode"))
	fmt.Fprintf(out, "Documents: %s (context: %s)\n", cfg.DocsDir, cfg.ContextMode())
	fmt.Fprintln(out, infoStyle.Render(`Type a question, "status", "clear", or "quit".`))

	r := &repl{cfg: cfg, searcher: srch, extractor: extractor, out: out}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		if done := r.handle(cmd, strings.TrimSpace(scanner.Text())); done {
			return nil
		}
	}
}

type repl struct {
	cfg       *config.Config
	searcher  *searcher.Searcher
	extractor *keywords.Extractor
	out       io.Writer
}

// handle processes one input line and reports whether the session is over
func (r *repl) handle(cmd *cobra.Command, line string) bool {
	switch strings.ToLower(line) {
	case "":
		fmt.Fprintln(r.out, warningStyle.Render("Please enter a question."))
		return false
	case "quit", "exit":
		fmt.Fprintln(r.out, "Bye!")
		return true
	case "clear":
		r.searcher.ClearCache()
		fmt.Fprintln(r.out, successStyle.Render("Cache cleared."))
		return false
	case "status":
		renderStatus(r.out, r.searcher)
		return false
	}

	kws := r.extractor.Extract(line)
	if len(kws) == 0 {
		fmt.Fprintln(r.out, warningStyle.Render("No keywords found, try a more specific question."))
		return false
	}
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Render("Keywords:"), strings.Join(kws, ", "))

	resp, err := r.searcher.Search(commandContext(cmd), kws)
	if err != nil {
		fmt.Fprintln(r.out, errorStyle.Render("Search failed: "+err.Error()))
		return false
	}
	renderResults(r.out, resp)

	if len(resp.Results) > 0 {
		if err := r.searcher.SaveResults(r.cfg.ResultsFile); err != nil {
			logger.Error("%v", err)
		} else {
			fmt.Fprintln(r.out, successStyle.Render("Results saved to "+r.cfg.ResultsFile))
		}
	}
	return false
}
