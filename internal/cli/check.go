package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/scanner"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the documents folder and configuration",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, headerStyle.Render("Environment check"))
	fmt.Fprintf(out, "   %s %s\n", labelStyle.Render("Documents:"), cfg.DocsDir)
	fmt.Fprintf(out, "   %s %s, %s blocks\n", labelStyle.Render("Context:"), cfg.ContextMode(), cfg.BoundaryPolicy)
	fmt.Fprintf(out, "   %s %d workers, %d results, %d cached searches\n",
		labelStyle.Render("Limits:"), cfg.MaxWorkers, cfg.MaxResults, cfg.CacheSize)

	count, err := scanner.CountDocuments(cfg.DocsDir)
	switch {
	case errors.Is(err, scanner.ErrDirectoryNotFound):
		fmt.Fprintln(out, errorStyle.Render("Documents folder does not exist: "+cfg.DocsDir))
		return err
	case err != nil:
		fmt.Fprintln(out, errorStyle.Render("Documents folder is not readable: "+err.Error()))
		return err
	case count == 0:
		fmt.Fprintln(out, warningStyle.Render("No .docx documents found."))
	default:
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Found %d .docx document(s).", count)))
	}
	return nil
}
