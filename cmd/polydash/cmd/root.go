package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Millionaireguardian/polymarket-dashboard/config"
)

var rootCmd = &cobra.Command{
	Use:   "polydash",
	Short: "Dashboard for the Polymarket arbitrage bot's trade log",
	Long: `Polydash consumes the JSON trade log written by the Polymarket arbitrage
bot and turns it into summary statistics, a searchable trade table, and
balance/win-rate chart data.

The bot's log is best-effort: balances may be missing, zero, or wrong, and
dry-run sessions log no P&L at all. Polydash reconstructs a consistent
running balance from the trade sequence and reconciles it against the
logged values before rendering anything.

It can run as an HTTP server (polydash serve) that polls the log on an
interval, or produce a one-shot text report (polydash summary).`,
	SilenceUsage: true,
}

var (
	flagConfig   string
	flagSource   string
	flagListen   string
	flagInterval string
	flagLogLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "path to config file (YAML or JSON)")
	pf.StringVar(&flagSource, "source", "", "trade log URL or file path")
	pf.StringVar(&flagListen, "listen", "", "host:port for the HTTP server")
	pf.StringVar(&flagInterval, "interval", "", "poll interval, e.g. 30s")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// loadConfig resolves configuration with flag > env > file > default
// precedence and validates the result.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("POLYDASH_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	if flagSource != "" {
		cfg.Source = flagSource
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagInterval != "" {
		cfg.PollInterval = flagInterval
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
