package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyeh/clinsam/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "samload",
	Short: "Clinical master-code importer and SAM claim exporter",
	Long: "Imports master code spreadsheets (procedure/drug/diagnosis price tables) into Postgres\n" +
		"and exports clinical visits as pipe-delimited SAM claim files.",
}

func init() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.ProviderID, "provider-id", envOr("PROVIDER_ID", config.DefaultProviderID), "Provider identifier for claim headers (or set PROVIDER_ID)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
