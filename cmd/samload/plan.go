package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/clinsam/internal/exitcode"
	"github.com/gyeh/clinsam/internal/logging"
	"github.com/gyeh/clinsam/internal/mapping"
	"github.com/gyeh/clinsam/internal/model"
	"github.com/gyeh/clinsam/internal/normalize"
	"github.com/gyeh/clinsam/internal/tabread"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run mapping resolution and row stats (no writes)",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to .csv/.xlsx/.xlsb master file (required)")
	f.StringVar(&cfg.Category, "category", "ACT", "Default category for imported rows")
	f.StringVar(&cfg.Sheet, "sheet", "", "Worksheet name or zero-based index")
	f.StringVar(&cfg.AliasFile, "aliases", "", "YAML file overriding the column alias table")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateImport(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	aliases, err := cfg.LoadAliases()
	if err != nil {
		log.Error().Err(err).Msg("alias config failed")
		os.Exit(exitcode.UsageError)
	}

	reader, err := tabread.Open(cfg.FilePath, cfg.Sheet)
	if err != nil {
		log.Error().Err(err).Msg("failed to open file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	columns := reader.Columns()
	m := mapping.ResolveMapping(columns, aliases)

	var total, valid, skipped int64
	byCategory := make(map[model.Category]int64)
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Error().Err(readErr).Msg("failed to read rows")
			os.Exit(exitcode.ValidationError)
		}
		total++

		raw := make(map[string]string, len(columns))
		for i, col := range columns {
			raw[col] = row[i]
		}
		item, ok := normalize.Row(raw, m, model.Category(cfg.Category))
		if !ok {
			skipped++
			continue
		}
		valid++
		byCategory[item.Category]++
	}

	fmt.Println("=== samload plan ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("Columns:    %s\n", strings.Join(columns, ", "))
	fmt.Println("Mapping:")
	for _, field := range mapping.Fields {
		if col, ok := m[field]; ok {
			fmt.Printf("  %-14s -> %s\n", field, col)
		} else {
			fmt.Printf("  %-14s -> (unmapped)\n", field)
		}
	}
	fmt.Printf("Total rows: %d (valid %d, skipped %d)\n", total, valid, skipped)
	fmt.Println("Category distribution:")
	for _, cat := range model.AllCategories {
		if n := byCategory[cat]; n > 0 {
			fmt.Printf("  %-4s %d\n", cat, n)
		}
	}
	return nil
}
