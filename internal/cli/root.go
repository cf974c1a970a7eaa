// Package cli implements the docsearch command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/keywords"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/internal/segment"
)

var (
	version   = "dev"
	buildTime = "unknown"

	cfgFile string
	docsDir string
	verbose bool

	// appConfig is loaded before every command runs
	appConfig *config.Config

	// tokenizer overrides the word segmenter; nil selects segment.Default()
	tokenizer segment.Tokenizer
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Keyword search over folders of .docx documents",
	Long: `docsearch splits .docx documents into paragraph blocks, keeps the blocks
containing your keywords and ranks them by keyword overlap. Each result carries
the heading breadcrumb it appears under.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVarP(&docsDir, "docs", "d", "", "documents folder (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion records build information shown by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if docsDir != "" {
		cfg.DocsDir = docsDir
	}
	if verbose {
		cfg.Verbose = true
	}

	logger.SetVerbose(cfg.Verbose)
	appConfig = cfg
	return nil
}

// newServices builds the searcher and keyword extractor for cfg
func newServices(cfg *config.Config) (*searcher.Searcher, *keywords.Extractor, error) {
	sc, err := cfg.SearcherConfig()
	if err != nil {
		return nil, nil, err
	}

	var opts []searcher.Option
	if tokenizer != nil {
		opts = append(opts, searcher.WithTokenizer(tokenizer))
	}

	extractor := keywords.New(tokenizer, nil)
	extractor.AddStopwords(cfg.Stopwords...)

	return searcher.New(sc, opts...), extractor, nil
}

// commandContext returns the command's context, or Background when the
// command was run without one
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{config.ErrInvalidConfig}, args...)...)
}
