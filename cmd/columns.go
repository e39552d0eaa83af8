package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/textview"
	"github.com/KaramelBytes/paperdash/internal/utils"
	"github.com/spf13/cobra"
)

var colFormat string

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List columns with their type, inferred role and missing count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		defer t.Release()
		cols := analysis.Columns(t)
		switch strings.ToLower(colFormat) {
		case "text", "":
			fmt.Fprintln(cmd.OutOrStdout(), textview.Columns(cols))
		case "json":
			b, err := utils.PrettyJSON(cols)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
		default:
			return fmt.Errorf("unsupported --format: %s (use text|json)", colFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().StringVar(&colFormat, "format", "text", "output format: text|json")
}
