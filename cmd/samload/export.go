package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gyeh/clinsam/internal/claim"
	"github.com/gyeh/clinsam/internal/db"
	"github.com/gyeh/clinsam/internal/exitcode"
	"github.com/gyeh/clinsam/internal/logging"
	"github.com/gyeh/clinsam/internal/model"
	"github.com/gyeh/clinsam/internal/sam"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export SAM claim files for a date range or a single clinical note",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&cfg.OutPath, "out", "", "Output SAM file path (required)")
	f.Int64Var(&cfg.NoteID, "note", 0, "Export a single clinical note by id")
	f.StringVar(&cfg.DateFrom, "from", "", "Start date YYYY-MM-DD (inclusive)")
	f.StringVar(&cfg.DateTo, "to", "", "End date YYYY-MM-DD (inclusive)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateExport(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.RequireDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	collector := claim.NewCollector(cfg.ProviderID, store, store)

	var claims []model.Claim
	if cfg.NoteID != 0 {
		c, err := collector.CollectNote(ctx, cfg.NoteID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				log.Error().Int64("note", cfg.NoteID).Msg("clinical note not found")
				os.Exit(exitcode.NotFound)
			}
			log.Error().Err(err).Msg("claim collection failed")
			os.Exit(exitcode.ExportError)
		}
		claims = []model.Claim{*c}
	} else {
		from, to, err := cfg.ExportRange()
		if err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
		claims, err = collector.CollectRange(ctx, from, to)
		if err != nil {
			log.Error().Err(err).Msg("claim collection failed")
			os.Exit(exitcode.ExportError)
		}
		if len(claims) == 0 {
			log.Warn().Str("from", cfg.DateFrom).Str("to", cfg.DateTo).Msg("no claims found for the given range")
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.OutPath), 0o755); err != nil {
		log.Error().Err(err).Msg("failed to create output directory")
		os.Exit(exitcode.ExportError)
	}
	if err := os.WriteFile(cfg.OutPath, []byte(sam.RenderFile(claims)), 0o644); err != nil {
		log.Error().Err(err).Msg("failed to write SAM file")
		os.Exit(exitcode.ExportError)
	}

	fmt.Printf("Exported %d claim(s) to %s\n", len(claims), cfg.OutPath)
	return nil
}
