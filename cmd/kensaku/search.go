package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperjump/kensaku/internal/extract"
	"github.com/hyperjump/kensaku/internal/index"
	"github.com/hyperjump/kensaku/internal/pathres"
	"github.com/hyperjump/kensaku/internal/search"
	"github.com/hyperjump/kensaku/pkg/utils"
)

var (
	searchGlob       string
	searchSkip       int
	searchLimit      int
	searchStructured bool
)

// searchCmd runs one query from the command line and prints the same report
// the MCP tool returns. Useful for trying queries without an MCP client.
var searchCmd = &cobra.Command{
	Use:   "search <query> [root-path]",
	Short: "Run a one-shot search and print the result page",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchGlob, "glob", "*", "glob filter on file paths")
	searchCmd.Flags().IntVar(&searchSkip, "skip", 0, "number of ranked hits to skip")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum hits to return (0 for the configured default)")
	searchCmd.Flags().BoolVar(&searchStructured, "structured", false, "take the query as structured syntax, no fuzzy rewriting")
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args[1:])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	resolver := pathres.New(root, cfg.Display.AbsolutePaths)
	builder := index.NewBuilder(resolver, &cfg.Search, extract.NewExtractor(), index.WithLogger(logger))
	defer func() { _ = builder.Close() }()
	executor := search.NewExecutor(builder, &cfg.Search, logger)

	run := executor.Search
	if searchStructured {
		run = executor.SearchStructured
	}
	page, err := run(cmd.Context(), args[0], searchGlob, searchSkip, searchLimit)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), search.FormatPage(page, resolver, nil))
	return nil
}
