package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Millionaireguardian/polymarket-dashboard/dashboard"
	"github.com/Millionaireguardian/polymarket-dashboard/loader"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	Long: `Serve polls the trade log on the configured interval and exposes the
dashboard: a server-rendered index page plus JSON endpoints for summary,
trades, chart series, status, and a manual refresh trigger.

The server keeps serving the last good snapshot when a poll fails; the
failure is only visible in the status endpoint and the page banner.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	interval, err := cfg.Interval()
	if err != nil {
		return fmt.Errorf("poll interval: %w", err)
	}

	ldr := loader.New(loader.Config{
		Source:       cfg.Source,
		PollInterval: interval,
	}, log)

	srv, err := dashboard.NewServer(dashboard.Config{
		Listen:       cfg.Listen,
		PollInterval: interval,
		Reconcile:    cfg.ReconcileOptions(),
	}, ldr, log)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go ldr.Run(ctx)

	if err := srv.Start(); err != nil {
		return err
	}
	log.Info().Str("source", cfg.Source).Dur("interval", interval).Msg("polling trade log")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
