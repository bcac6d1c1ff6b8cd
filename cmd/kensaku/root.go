// root.go defines the root command, shared flags and root path resolution.
// Running kensaku with no subcommand serves MCP over stdio, so a client
// config can point straight at the binary.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperjump/kensaku/internal/config"
)

// rootPathEnv names the environment variable consulted when no root
// directory argument is given.
const rootPathEnv = "SEARCH_PATH"

var (
	cfgFile       string
	debug         bool
	absolutePaths bool
)

var rootCmd = &cobra.Command{
	Use:   "kensaku [root-path]",
	Short: "Full-text search over a directory tree, served as MCP tools",
	Long: `kensaku indexes the files under a root directory into an in-memory
full-text index and exposes search, file reading and directory listing as
MCP tools over stdio. The index builds lazily on the first search and is
never rebuilt within one process.

The root directory comes from the positional argument or the SEARCH_PATH
environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&absolutePaths, "absolute-paths", false, "display absolute paths instead of root-relative ones")
	rootCmd.AddCommand(serveCmd, searchCmd)
}

// Execute runs the root command. A missing root directory is a usage error
// and exits non-zero with the usage text on stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errNoRoot) {
			_ = rootCmd.Usage()
		}
		os.Exit(1)
	}
}

var errNoRoot = errors.New("no root directory: pass it as an argument or set " + rootPathEnv)

// resolveRoot picks the root directory from the positional argument, falling
// back to the environment.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if v := os.Getenv(rootPathEnv); v != "" {
		return v, nil
	}
	return "", errNoRoot
}

// loadConfig loads the YAML config when --config is given, otherwise the
// defaults, and applies command line overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	if cmd.Flags().Changed("absolute-paths") {
		cfg.Display.AbsolutePaths = absolutePaths
	}
	return cfg, nil
}
