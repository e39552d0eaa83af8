package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/paperdash/internal/dataset"
	"github.com/KaramelBytes/paperdash/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		logger := newLogger(cmd)

		var loader dataset.Loader = dataset.Eager{Options: datasetOptions()}
		if cfg.CacheEnabled {
			cache := dataset.NewCache(datasetOptions())
			defer cache.Close()
			loader = cache
		}
		// Pages render the load error themselves; this is only an early hint.
		if t, err := loader.Load(cfg.DataPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ %s\n", dataset.LoadedMessage(t))
			t.Release()
		}

		srv, err := web.New(cfg, loader, logger)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Debug("config", slog.String("data_path", cfg.DataPath), slog.Bool("cache", cfg.CacheEnabled))
		return srv.ListenAndServe(ctx, func(addr string) {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s at http://%s\n", cfg.Title, addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides listen_addr)")
}
