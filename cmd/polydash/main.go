package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Millionaireguardian/polymarket-dashboard/cmd/polydash/cmd"
)

func main() {
	// Load .env if present; plain env vars still win.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
