package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/clinsam/internal/db"
	"github.com/gyeh/clinsam/internal/exitcode"
	"github.com/gyeh/clinsam/internal/logging"
	"github.com/gyeh/clinsam/internal/model"
	"github.com/gyeh/clinsam/internal/snapshot"
)

var snapshotCategory string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Dump the master code table to a Parquet file",
	RunE:  runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVar(&cfg.OutPath, "out", "", "Output Parquet file path (required)")
	f.StringVar(&snapshotCategory, "category", "", "Restrict to one category: ACT, DRG, DX or ETC")
	_ = snapshotCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.RequireDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var category *model.Category
	if snapshotCategory != "" {
		if !model.ValidCategory(snapshotCategory) {
			log.Error().Str("category", snapshotCategory).Msg("invalid category")
			os.Exit(exitcode.UsageError)
		}
		c := model.Category(snapshotCategory)
		category = &c
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	n, err := snapshot.Write(ctx, db.NewStore(pool), log, category, cfg.OutPath)
	if err != nil {
		log.Error().Err(err).Msg("snapshot failed")
		os.Exit(exitcode.ExportError)
	}

	fmt.Printf("Snapshot complete: %d rows written to %s\n", n, cfg.OutPath)
	return nil
}
