package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/searcher"
)

var (
	searchLimit    int
	searchJSON     bool
	searchQuestion bool
	searchSave     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search documents for keywords",
	Long: `Finds the paragraph blocks containing any of the keywords (verbatim,
case-sensitive) and ranks them by keyword overlap. With --question the
arguments are read as a natural language question and keywords are
extracted from it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchQuestion, "question", "q", false, "treat arguments as a question")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "also write results to the configured results file")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if searchLimit < 0 {
		return configError("limit must not be negative, got %d", searchLimit)
	}
	if searchLimit > 0 {
		cfg.MaxResults = searchLimit
	}

	srch, extractor, err := newServices(&cfg)
	if err != nil {
		return err
	}

	kws := args
	if searchQuestion {
		kws = extractor.Extract(strings.Join(args, " "))
		fmt.Fprintf(cmd.ErrOrStderr(), "Keywords: %s\n", strings.Join(kws, ", "))
	}
	if len(searcher.NormalizeKeywords(kws)) == 0 {
		return errors.New("no usable keywords")
	}

	resp, err := srch.Search(commandContext(cmd), kws)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchSave {
		if err := srch.SaveResults(cfg.ResultsFile); err != nil {
			return err
		}
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	renderResults(cmd.OutOrStdout(), resp)
	if searchSave {
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Results saved to "+cfg.ResultsFile))
	}
	return nil
}

func outputSearchJSON(cmd *cobra.Command, resp *searcher.SearchResponse) error {
	if resp.Diagnostic != nil {
		return resp.Diagnostic
	}
	data, err := searcher.MarshalResults(resp.Results)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
