package tables

import "strings"

// nameSeparator joins header levels and model names into flat column names.
const nameSeparator = "_"

// ColumnKey is the structured identity of a prediction table column:
// which keypoint, which coordinate (x, y or likelihood) and, once a
// table has been merged, which model. Keys stay structured internally
// and flatten to strings only at the frame boundary, so a keypoint name
// containing the separator cannot be misparsed.
type ColumnKey struct {
	Keypoint   string
	Coordinate string
	Model      string
}

// WithModel returns a copy of the key tagged with the given model name.
func (k ColumnKey) WithModel(model string) ColumnKey {
	k.Model = model
	return k
}

// FullName flattens the key into a frame column name, joining the
// non-empty parts with "_" and stripping surrounding whitespace.
func (k ColumnKey) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{k.Keypoint, k.Coordinate, k.Model} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, nameSeparator)
}

// ColumnNames returns the flattened per-model column names for one
// (keypoint, coordinate) pair, in model order.
func ColumnNames(keypoint, coordinate string, models []string) []string {
	names := make([]string, len(models))
	for i, model := range models {
		names[i] = ColumnKey{Keypoint: keypoint, Coordinate: coordinate, Model: model}.FullName()
	}
	return names
}
