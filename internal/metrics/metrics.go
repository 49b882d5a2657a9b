package metrics

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"
)

// ErrShapeMismatch is returned when a frame's column layout does not
// line up with the keypoint list (three columns per keypoint plus an
// optional trailing set column).
var ErrShapeMismatch = errors.New("column layout does not match keypoint triplets")

// ComputePixelError shapes a precomputed per-keypoint error frame for
// the comparison table: the model name is attached, a row-wise "mean"
// column is added, and the leading index column is renamed to img_file.
//
// The mean deliberately excludes the last keypoint. The last keypoint
// conventionally holds a reference landmark rather than an anatomical
// one, so averaging it in would skew model comparison.
func ComputePixelError(df dataframe.DataFrame, keypointNames []string, modelName string) (dataframe.DataFrame, error) {
	if df.Ncol() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("empty frame for model %s", modelName)
	}
	if len(keypointNames) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no keypoint names for model %s", modelName)
	}

	out := df.Rename("img_file", df.Names()[0])
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to rename index column: %w", out.Err)
	}

	rowMeans, err := meanExcludingLast(out, keypointNames)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	out = out.Mutate(series.New(repeat(modelName, out.Nrow()), series.String, "model_name"))
	if out.Err != nil {
		return dataframe.DataFrame{}, out.Err
	}
	out = out.Mutate(series.New(rowMeans, series.Float, "mean"))
	if out.Err != nil {
		return dataframe.DataFrame{}, out.Err
	}

	return out, nil
}

// ComputeConfidence extracts the likelihood slot of every keypoint
// triplet from a raw prediction frame into named per-keypoint columns,
// then attaches the model name and the mean-excluding-last column. When
// the frame carries a trailing set column it is kept, along with an
// img_file column taken from the leading index column; otherwise both
// are omitted.
func ComputeConfidence(df dataframe.DataFrame, keypointNames []string, modelName string) (dataframe.DataFrame, error) {
	dataCols := df.Ncol() - 1
	if dataCols < 0 {
		return dataframe.DataFrame{}, fmt.Errorf("empty frame for model %s", modelName)
	}
	if len(keypointNames) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no keypoint names for model %s", modelName)
	}

	hasSet := dataCols%3 == 1
	triplets := dataCols / 3
	if dataCols%3 == 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %d data columns", ErrShapeMismatch, dataCols)
	}
	if triplets != len(keypointNames) {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %d triplets for %d keypoints",
			ErrShapeMismatch, triplets, len(keypointNames))
	}

	names := df.Names()
	confidences := make([][]float64, len(keypointNames))
	for c := range keypointNames {
		col := df.Col(names[1+c*3+2])
		if col.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("likelihood column for %s: %w", keypointNames[c], col.Err)
		}
		confidences[c] = col.Float()
	}

	nrow := df.Nrow()
	cols := make([]series.Series, 0, len(keypointNames)+4)
	for c, keypoint := range keypointNames {
		cols = append(cols, series.New(confidences[c], series.Float, keypoint))
	}
	cols = append(cols, series.New(repeat(modelName, nrow), series.String, "model_name"))

	rowMeans := make([]float64, nrow)
	tmp := make([]float64, len(keypointNames)-1)
	for r := 0; r < nrow; r++ {
		for c := range tmp {
			tmp[c] = confidences[c][r]
		}
		rowMeans[r] = stat.Mean(tmp, nil)
	}
	cols = append(cols, series.New(rowMeans, series.Float, "mean"))

	if hasSet {
		set := df.Col(names[len(names)-1])
		if set.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("set column: %w", set.Err)
		}
		index := df.Col(names[0])
		if index.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("index column: %w", index.Err)
		}
		cols = append(cols, series.New(set.Records(), series.String, "set"))
		cols = append(cols, series.New(index.Records(), series.String, "img_file"))
	}

	out := dataframe.New(cols...)
	if out.Err != nil {
		return dataframe.DataFrame{}, out.Err
	}
	return out, nil
}

// meanExcludingLast computes per-row means over all keypoint columns
// except the last keypoint, in keypoint order.
func meanExcludingLast(df dataframe.DataFrame, keypointNames []string) ([]float64, error) {
	meanCols := keypointNames[:len(keypointNames)-1]
	values := make([][]float64, len(meanCols))
	for c, name := range meanCols {
		col := df.Col(name)
		if col.Err != nil {
			return nil, fmt.Errorf("keypoint column %s: %w", name, col.Err)
		}
		values[c] = col.Float()
	}

	rowMeans := make([]float64, df.Nrow())
	tmp := make([]float64, len(meanCols))
	for r := range rowMeans {
		for c := range tmp {
			tmp[c] = values[c][r]
		}
		rowMeans[r] = stat.Mean(tmp, nil)
	}
	return rowMeans, nil
}

func repeat(value string, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = value
	}
	return values
}
