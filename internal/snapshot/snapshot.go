// Package snapshot dumps the master code table to a Parquet file for
// offline analysis and diffing between import runs.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/gyeh/clinsam/internal/db"
	"github.com/gyeh/clinsam/internal/model"
)

// Row is the Parquet schema for one master code record.
type Row struct {
	Code     string  `parquet:"code"`
	Name     string  `parquet:"name"`
	Category string  `parquet:"category"`
	Price    *int64  `parquet:"price,optional"`
	Unit     *string `parquet:"unit,optional"`
}

// Write queries master codes (optionally one category) and writes them to
// a Parquet file at outPath. Returns the number of rows written.
func Write(ctx context.Context, store *db.Store, log zerolog.Logger, category *model.Category, outPath string) (int, error) {
	start := time.Now()

	items, err := store.MasterItems(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("snapshot query: %w", err)
	}

	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{
			Code:     it.Code,
			Name:     it.Name,
			Category: string(it.Category),
			Price:    it.Price,
			Unit:     it.Unit,
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[Row](f)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return 0, fmt.Errorf("write snapshot rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("close snapshot writer: %w", err)
	}

	log.Info().
		Int("rows", len(rows)).
		Str("out", outPath).
		Dur("duration", time.Since(start)).
		Msg("snapshot written")
	return len(rows), nil
}
