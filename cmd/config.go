package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/paperdash/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set paperdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "data_path: %s\n", cfg.DataPath)
		if cfg.Delimiter != "" {
			fmt.Fprintf(w, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.SheetName != "" {
			fmt.Fprintf(w, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(w, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(w, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(w, "title: %s\n", cfg.Title)
		fmt.Fprintf(w, "cache_enabled: %t\n", cfg.CacheEnabled)
		fmt.Fprintf(w, "default_top_n: %d\n", cfg.DefaultTopN)
		fmt.Fprintf(w, "default_sample_size: %d\n", cfg.DefaultSampleSize)
		fmt.Fprintf(w, "default_columns: %d\n", cfg.DefaultColumns)
		fmt.Fprintf(w, "chart_width: %d\n", cfg.ChartWidth)
		fmt.Fprintf(w, "chart_height: %d\n", cfg.ChartHeight)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Save the file-backed values, not the --data override.
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "data_path":
			c.DataPath = val
		case "delimiter":
			c.Delimiter = val
		case "sheet_name":
			c.SheetName = val
		case "sheet_index":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.SheetIndex = i
		case "listen_addr":
			c.ListenAddr = val
		case "title":
			c.Title = val
		case "cache_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for cache_enabled: %w", err)
			}
			c.CacheEnabled = b
		case "default_top_n":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.DefaultTopN = i
		case "default_sample_size":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.DefaultSampleSize = i
		case "default_columns":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for default_columns: %v", val)
			}
			c.DefaultColumns = i
		case "chart_width":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.ChartWidth = i
		case "chart_height":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			c.ChartHeight = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}
