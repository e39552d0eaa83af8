package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/paperdash/internal/config"
	"github.com/KaramelBytes/paperdash/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataPath string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "paperdash",
	Short: "paperdash: explore bibliographic metadata in the browser or terminal",
	Long: `paperdash loads a CORD-19 style metadata file (CSV, TSV, XLSX or Parquet),
finds the publication year and journal columns, and shows publication trends,
top journals and data quality figures in a web dashboard or on the terminal.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig() },
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.paperdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset file (overrides data_path)")
}

func loadConfig() error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	// Apply CLI overrides if provided
	if rootCmd.PersistentFlags().Changed("data") && dataPath != "" {
		cfg.DataPath = dataPath
	}
	return nil
}

func datasetOptions() dataset.Options {
	return dataset.Options{
		Delimiter:  cfg.DelimiterRune(),
		SheetName:  cfg.SheetName,
		SheetIndex: cfg.SheetIndex,
	}
}

// loadDataset reads the configured file and reports the row count on stderr.
func loadDataset(cmd *cobra.Command) (*dataset.Table, error) {
	t, err := dataset.Load(cfg.DataPath, datasetOptions())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ %s\n", dataset.LoadedMessage(t))
	return t, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
