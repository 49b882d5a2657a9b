package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes one workbook with a sheet per metric bucket, sheets
// ordered by bucket name. Sheet names are the bucket keys ("pixel
// error", "confidence", ...).
func (w *Writer) WriteXLSX(name string, buckets map[string]dataframe.DataFrame) error {
	if len(buckets) == 0 {
		return fmt.Errorf("no metric buckets to export to %s", name)
	}

	fullPath := filepath.Join(w.baseDir, name)

	w.logger.Info("writing xlsx export",
		slog.String("path", fullPath),
		slog.Int("sheets", len(buckets)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	f := excelize.NewFile()
	defer f.Close()

	for _, key := range keys {
		if _, err := f.NewSheet(key); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", key, err)
		}
		for r, record := range buckets[key].Records() {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address row %d: %w", r+1, err)
			}
			row := make([]interface{}, len(record))
			for c, value := range record {
				row[c] = value
			}
			if err := f.SetSheetRow(key, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of sheet %s: %w", r+1, key, err)
			}
		}
	}

	// drop the default sheet excelize seeds the workbook with
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
