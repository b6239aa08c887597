package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/internal/config"
	"github.com/joshuapare/pagekit/internal/logger"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	jsonOut      bool
	configPath   string
	pageSizeFlag int
)

// numbers formats integers with thousands separators.
var numbers = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "pagectl",
	Short: "Inspect allocator page geometry and size classes",
	Long: `pagectl resolves the allocator page geometry the same way the heap does at
startup and reports cell counts, size-class buckets and request routing.

The fixed-block page size comes from the config file, then the
PAGEKIT_FIXED_BLOCK_PAGE_SIZE_KIB environment variable, then --fixed-block-page-size.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Enabled: verbose, Level: slog.LevelDebug})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pagekit.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().
		IntVar(&pageSizeFlag, "fixed-block-page-size", 0, "Fixed-block page size in KiB (overrides config)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveGeometry loads the configuration, applies the flag override and
// resolves the geometry once for the command.
func resolveGeometry() (*geometry.Geometry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if pageSizeFlag != 0 {
		cfg.FixedBlockPageKiB = pageSizeFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	printVerbose("Fixed-block page size: %d KiB\n", cfg.FixedBlockPageSizeKiB())

	g, err := geometry.Resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve geometry: %w", err)
	}
	return g, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		numbers.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		numbers.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
