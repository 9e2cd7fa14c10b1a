// Package cmd implements the psgraph CLI harness: the thin layer around
// the core pipeline that reads G/T/order from disk, drives succinct.Build,
// and reports timing or memory back to the caller.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/succinctgraph/psgraph/pkg/config"
	"github.com/succinctgraph/psgraph/pkg/utils"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	logger utils.Logger
	cfg    *config.Config
	runID  string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "psgraph",
	Short: "Build a succinct representation of a triangulated plane graph",
	Long: `psgraph builds the succinct bitstring encoding (S1, S2, S3) of a
triangulated plane graph G and one of its spanning trees T, given a
canonical vertex ordering.

It implements the parallel construction pipeline only: counting edge
orientations, threading the Euler tour, ranking it, and scattering bits
into the three output bitstrings, which are then handed to a
range-min-max-tree constructor.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c

		logLevel := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stderr)
		runID = uuid.NewString()
		logger.WithField("run_id", runID).Debug("psgraph starting")
		return nil
	},
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a config file (defaults apply if absent)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	binName := BinName()
	rootCmd.Example = `  # Build the succinct encoding of a graph, tree and canonical order
  ` + binName + ` build graph.txt tree.txt order.txt

  # Use a fixed worker count instead of the config/CPU-derived default
  ` + binName + ` build graph.txt tree.txt order.txt --workers 4

  # Report a memory profile instead of the timing line
  ` + binName + ` build graph.txt tree.txt order.txt --mem`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
