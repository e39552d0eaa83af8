package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/chart"
	"github.com/KaramelBytes/paperdash/internal/classify"
	"github.com/KaramelBytes/paperdash/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chartTop        int
	chartFormat     string
	chartOutputPath string
)

var chartCmd = &cobra.Command{
	Use:       "chart <timeseries|journals>",
	Short:     "Export a dashboard chart as SVG or PNG",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"timeseries", "journals"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartOutputPath == "" {
			return errors.New("--output is required")
		}
		format, err := chart.ParseFormat(chartFormat)
		if err != nil {
			return err
		}
		top := cfg.DefaultTopN
		if cmd.Flags().Changed("top") {
			top = chartTop
		}
		if top < 1 {
			top = 1
		}

		t, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		defer t.Release()
		roles := classify.Classify(t.ColumnNames())
		opts := chart.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight, Format: format}

		var img []byte
		switch args[0] {
		case "timeseries":
			if !roles.HasYear() {
				return fmt.Errorf("no year column found in %s", t.Name)
			}
			img, err = chart.TimeSeries(analysis.TimeSeries(t, roles.Year), opts)
		case "journals":
			if !roles.HasJournal() {
				return fmt.Errorf("no journal or source column found in %s", t.Name)
			}
			img, err = chart.TopJournals(analysis.TopN(t, roles.Journal, top), top, opts)
		}
		if errors.Is(err, chart.ErrNoData) {
			return fmt.Errorf("%s chart: column has no values", args[0])
		}
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(chartOutputPath, img); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s chart to %s\n", args[0], chartOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().IntVar(&chartTop, "top", 10, "journals to show (default from config)")
	chartCmd.Flags().StringVar(&chartFormat, "format", "svg", "image format: svg|png")
	chartCmd.Flags().StringVarP(&chartOutputPath, "output", "o", "", "path to write the image")
}
