package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/clinsam/internal/db"
	"github.com/gyeh/clinsam/internal/exitcode"
	"github.com/gyeh/clinsam/internal/importer"
	"github.com/gyeh/clinsam/internal/logging"
	"github.com/gyeh/clinsam/internal/model"
	"github.com/gyeh/clinsam/internal/tabread"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a master code spreadsheet into the store",
	RunE:  runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to .csv/.xlsx/.xlsb master file (required)")
	f.StringVar(&cfg.Category, "category", "ACT", "Default category for imported rows: ACT, DRG, DX or ETC")
	f.StringVar(&cfg.Sheet, "sheet", "", "Worksheet name or zero-based index (default: first sheet)")
	f.StringVar(&cfg.AliasFile, "aliases", "", "YAML file overriding the column alias table")
	f.IntVar(&cfg.BatchSize, "batch-size", importer.DefaultBatchSize, "Rows per upsert transaction")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateImport(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.RequireDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	aliases, err := cfg.LoadAliases()
	if err != nil {
		log.Error().Err(err).Msg("alias config failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := importer.Run(ctx, db.NewStore(pool), log, importer.Options{
		FilePath:  cfg.FilePath,
		Sheet:     cfg.Sheet,
		Category:  model.Category(cfg.Category),
		Aliases:   aliases,
		BatchSize: cfg.BatchSize,
	})
	if err != nil {
		var pe *importer.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("import failed")
		} else {
			log.Error().Err(err).Msg("import failed")
		}
		if errors.Is(err, tabread.ErrUnsupportedFormat) || errors.Is(err, importer.ErrEmptyInput) {
			os.Exit(exitcode.ValidationError)
		}
		os.Exit(exitcode.ImportError)
	}

	fmt.Printf("Import complete: %d rows read, %d inserted, %d updated, %d skipped (%.1fs)\n",
		summary.RowsRead, summary.RowsInserted, summary.RowsUpdated, summary.RowsSkipped,
		summary.Duration.Seconds())
	return nil
}
