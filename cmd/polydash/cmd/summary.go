package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Millionaireguardian/polymarket-dashboard/loader"
	"github.com/Millionaireguardian/polymarket-dashboard/reconcile"
	"github.com/Millionaireguardian/polymarket-dashboard/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a one-shot summary of the trade log",
	Long: `Summary loads the trade log once, reconstructs the balance history, and
prints the summary statistics and the trade table as text.

Examples:
  polydash summary
  polydash summary --source ./data/trades.json
  polydash summary --source https://bot.example.com/trades.json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
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

	ldr.Refresh(cmd.Context())
	if st := ldr.Status(); !st.Healthy {
		return fmt.Errorf("load trade log: %s", st.LastError)
	}

	snap := ldr.Snapshot()
	rec := reconcile.Reconstruct(snap.Trades, cfg.ReconcileOptions())
	sum := summary.Aggregate(snap.Trades, rec, time.Now())

	fmt.Println(summary.FormatOrg(sum))
	if len(snap.Trades) == 0 {
		fmt.Println("No trades yet.")
		return nil
	}
	fmt.Println(summary.FormatTradesTable(rec.DisplayTrades()))
	return nil
}
