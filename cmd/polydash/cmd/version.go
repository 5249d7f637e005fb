package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the polydash CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("polydash version %s\n", version)
		fmt.Println("Dashboard for the Polymarket arbitrage bot's trade log")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
