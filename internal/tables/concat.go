package tables

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ModelFrame pairs a model name with its loaded prediction table.
// Merging takes an ordered slice rather than a map so that column order
// in the merged frame is deterministic.
type ModelFrame struct {
	Name  string
	Table PredictionTable
}

// ConcatModelFrames merges the prediction tables of several models into
// one wide frame. Every column name is flattened (header levels joined
// with "_") and suffixed with "_<model>", then the per-model frames are
// joined column-wise in the given order. The returned keypoint names are
// taken from the first model's column layout.
//
// All frames must share the same row count; the merged frame has the
// summed column count.
func ConcatModelFrames(frames []ModelFrame) (dataframe.DataFrame, []string, error) {
	if len(frames) == 0 {
		return dataframe.DataFrame{}, nil, ErrNoFrames
	}

	base := frames[0].Table.KeypointNames()

	var merged dataframe.DataFrame
	for i, mf := range frames {
		renamed, err := suffixColumns(mf.Table, mf.Name)
		if err != nil {
			return dataframe.DataFrame{}, nil, fmt.Errorf("model %s: %w", mf.Name, err)
		}
		if i == 0 {
			merged = renamed
			continue
		}
		merged = merged.CBind(renamed)
		if merged.Err != nil {
			return dataframe.DataFrame{}, nil, fmt.Errorf("failed to bind model %s: %w", mf.Name, merged.Err)
		}
	}

	return merged, base, nil
}

// suffixColumns rebuilds a prediction frame with every column renamed to
// its flattened key plus the model suffix.
func suffixColumns(t PredictionTable, model string) (dataframe.DataFrame, error) {
	names := t.Frame.Names()
	if len(names) != len(t.Keys)+1 {
		return dataframe.DataFrame{}, fmt.Errorf("frame has %d columns but %d keys", len(names), len(t.Keys))
	}

	cols := make([]series.Series, len(names))
	for j, name := range names {
		s := t.Frame.Col(name)
		if s.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("column %s: %w", name, s.Err)
		}
		out := s.Copy()
		if j == 0 {
			out.Name = ColumnKey{Keypoint: t.Index, Model: model}.FullName()
		} else {
			out.Name = t.Keys[j-1].WithModel(model).FullName()
		}
		cols[j] = out
	}

	renamed := dataframe.New(cols...)
	if renamed.Err != nil {
		return dataframe.DataFrame{}, renamed.Err
	}
	return renamed, nil
}
