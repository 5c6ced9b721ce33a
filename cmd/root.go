package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/fraudeval/internal/config"
	"github.com/KaramelBytes/fraudeval/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile       string
	debug         bool
	flagLogFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "fraudeval",
	Short: "fraudeval: train and evaluate fraud classifiers on tabular data",
	Long: `fraudeval loads transaction datasets from CSV, profiles and splits them, trains
binary fraud classifiers and reports precision, recall, F1, AUC-PR and a
confusion-matrix heatmap. Runs can be recorded into experiments for comparison.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	defer func() { _ = zap.L().Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fraudeval/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log encoding: console or json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands with built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaults()
	}
	cfg = c

	level, format := cfg.LogLevel, cfg.LogFormat
	if debug {
		level = "debug"
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		format = flagLogFormat
	}
	logger, err := logging.New(level, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; using defaults\n", err)
		if logger, err = logging.New("info", "console"); err != nil {
			return
		}
	}
	zap.ReplaceGlobals(logger)
	zap.L().Debug("config loaded", zap.String("file", cfgFile), zap.String("label", cfg.LabelColumn))
}

// defaults mirrors the values config.Load falls back to.
func defaults() *cfgpkg.Global {
	return &cfgpkg.Global{
		LabelColumn:          "Class",
		TestSize:             0.2,
		Seed:                 42,
		DefaultModel:         "logistic",
		LogisticLearningRate: 0.1,
		LogisticEpochs:       500,
		KNNK:                 5,
		PlotDir:              "plots",
		ExperimentsDir:       "~/.fraudeval/experiments",
		LogLevel:             "info",
		LogFormat:            "console",
	}
}
