package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/textview"
	"github.com/KaramelBytes/paperdash/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumTop        int
	sumFormat     string
	sumOutputPath string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard figures for the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(sumFormat))
		switch format {
		case "text", "markdown", "md", "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use text|markdown|json)", sumFormat)
		}
		top := cfg.DefaultTopN
		if cmd.Flags().Changed("top") {
			top = sumTop
		}

		t, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		defer t.Release()
		d := analysis.BuildDashboard(t, top)

		var out []byte
		switch format {
		case "text":
			out = []byte(textview.Dashboard(cfg.Title, d))
		case "markdown", "md":
			out = []byte(d.Markdown())
		case "json":
			out, err = utils.PrettyJSON(d)
			if err != nil {
				return err
			}
		}

		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&sumTop, "top", 10, "number of journals to rank (default from config)")
	summaryCmd.Flags().StringVar(&sumFormat, "format", "text", "output format: text|markdown|json")
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary")
}
