package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Sentinel errors for table construction.
var (
	// ErrNoFrames is returned when a merge is requested over zero models.
	ErrNoFrames = errors.New("no model frames to merge")
	// ErrModelCount is returned when a scatter table is requested for
	// anything but exactly two models.
	ErrModelCount = errors.New("scatter table requires exactly two models")
)

// setColumn is the optional trailing column labeling rows as
// train/val/test/ood.
const setColumn = "set"

// PredictionTable is a loaded prediction frame together with the
// structured identity of its columns. The frame itself carries flat
// column names; Keys preserves the (keypoint, coordinate) pairs for the
// columns after the leading index column, in original column order.
type PredictionTable struct {
	Frame dataframe.DataFrame
	// Index is the flat name of the leading index column.
	Index string
	// Keys describes every column after the index, in order. A trailing
	// set-label column appears as a key with empty Coordinate.
	Keys []ColumnKey
}

// KeypointNames returns the keypoint names in original column order,
// taken at stride 3 across the coordinate triplets. Never sorted:
// sorting would silently misalign keypoints against the column layout.
func (t PredictionTable) KeypointNames() []string {
	n := len(t.Keys)
	if n%3 == 1 {
		// trailing set column is not part of a triplet
		n--
	}
	names := make([]string, 0, n/3)
	for i := 0; i+2 < n; i += 3 {
		names = append(names, t.Keys[i].Keypoint)
	}
	return names
}

// LoadPredictionTable reads a prediction CSV with a two-level column
// header (keypoint row, then coordinate row) into a flat-named frame.
// A DeepLabCut-style "scorer" row above the keypoint row is skipped.
func LoadPredictionTable(path string) (PredictionTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return PredictionTable{}, fmt.Errorf("failed to open prediction file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return PredictionTable{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "scorer") {
		rows = rows[1:]
	}
	if len(rows) < 2 {
		return PredictionTable{}, fmt.Errorf("%s: expected keypoint and coordinate header rows", path)
	}

	keypointRow, coordRow := rows[0], rows[1]
	if len(keypointRow) != len(coordRow) {
		return PredictionTable{}, fmt.Errorf("%s: header rows disagree on column count", path)
	}

	index := ColumnKey{Keypoint: keypointRow[0], Coordinate: coordRow[0]}.FullName()
	if index == "" {
		index = "img_file"
	}

	keys := make([]ColumnKey, 0, len(keypointRow)-1)
	flat := make([]string, 0, len(keypointRow))
	flat = append(flat, index)
	for j := 1; j < len(keypointRow); j++ {
		key := ColumnKey{
			Keypoint:   strings.TrimSpace(keypointRow[j]),
			Coordinate: strings.TrimSpace(coordRow[j]),
		}
		keys = append(keys, key)
		flat = append(flat, key.FullName())
	}

	records := make([][]string, 0, len(rows)-1)
	records = append(records, flat)
	records = append(records, rows[2:]...)

	frame := dataframe.LoadRecords(records)
	if frame.Err != nil {
		return PredictionTable{}, fmt.Errorf("failed to build frame for %s: %w", path, frame.Err)
	}

	return PredictionTable{Frame: frame, Index: index, Keys: keys}, nil
}

// LoadMetricTable reads a flat single-header metric CSV (pixel error,
// temporal norm, pca errors) as written alongside the predictions.
func LoadMetricTable(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open metric file: %w", err)
	}
	defer f.Close()

	frame := dataframe.ReadCSV(f)
	if frame.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse %s: %w", path, frame.Err)
	}
	return frame, nil
}
