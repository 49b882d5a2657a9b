package tables

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BuildBoxTable pivots a merged pixel-error frame into the long format
// the box plot consumes: one row per (frame, keypoint, model) with
// columns keypoint, metric, value and model_name.
func BuildBoxTable(df dataframe.DataFrame, keypointNames, modelNames []string) (dataframe.DataFrame, error) {
	var out dataframe.DataFrame
	first := true

	for _, keypoint := range keypointNames {
		for _, model := range modelNames {
			sub := df.Filter(dataframe.F{Colname: "model_name", Comparator: series.Eq, Comparando: model})
			if sub.Err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("failed to filter model %s: %w", model, sub.Err)
			}
			col := sub.Col(keypoint)
			if col.Err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("keypoint column %s: %w", keypoint, col.Err)
			}
			values := col.Float()
			if len(values) == 0 {
				continue
			}

			block := dataframe.New(
				series.New(repeat(keypoint, len(values)), series.String, "keypoint"),
				series.New(repeat("Pixel error", len(values)), series.String, "metric"),
				series.New(values, series.Float, "value"),
				series.New(repeat(model, len(values)), series.String, "model_name"),
			)
			if block.Err != nil {
				return dataframe.DataFrame{}, block.Err
			}

			if first {
				out = block
				first = false
				continue
			}
			out = out.RBind(block)
			if out.Err != nil {
				return dataframe.DataFrame{}, out.Err
			}
		}
	}

	return out, nil
}

// ScatterInput carries the two per-model frames to pair up in a scatter
// table. Exactly two models are required; anything else is rejected
// before any reshaping happens.
type ScatterInput struct {
	FrameA        dataframe.DataFrame `validate:"-"`
	FrameB        dataframe.DataFrame `validate:"-"`
	DataSubset    string              `validate:"required"`
	ModelNames    []string            `validate:"len=2"`
	KeypointNames []string            `validate:"min=1"`
}

// BuildScatterTable pairs two models' per-keypoint values for rows in
// the requested data subset: one row per (frame, keypoint) with columns
// img_file, keypoint and one value column per model.
func BuildScatterTable(in ScatterInput) (dataframe.DataFrame, error) {
	if err := validate.Struct(in); err != nil {
		if len(in.ModelNames) != 2 {
			err = fmt.Errorf("%w, got %d", ErrModelCount, len(in.ModelNames))
		}
		return dataframe.DataFrame{}, fmt.Errorf("invalid scatter input: %w", err)
	}

	subset := dataframe.F{Colname: setColumn, Comparator: series.Eq, Comparando: in.DataSubset}
	fa := in.FrameA.Filter(subset)
	if fa.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to filter %s rows: %w", in.DataSubset, fa.Err)
	}
	fb := in.FrameB.Filter(subset)
	if fb.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to filter %s rows: %w", in.DataSubset, fb.Err)
	}
	if fa.Nrow() != fb.Nrow() {
		return dataframe.DataFrame{}, fmt.Errorf("models disagree on %s row count: %d vs %d",
			in.DataSubset, fa.Nrow(), fb.Nrow())
	}

	imgs := fa.Col("img_file")
	if imgs.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("img_file column: %w", imgs.Err)
	}
	imgRecords := imgs.Records()

	var out dataframe.DataFrame
	first := true
	for _, keypoint := range in.KeypointNames {
		a := fa.Col(keypoint)
		b := fb.Col(keypoint)
		if a.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("keypoint column %s: %w", keypoint, a.Err)
		}
		if b.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("keypoint column %s: %w", keypoint, b.Err)
		}
		if len(imgRecords) == 0 {
			continue
		}

		block := dataframe.New(
			series.New(imgRecords, series.String, "img_file"),
			series.New(repeat(keypoint, len(imgRecords)), series.String, "keypoint"),
			series.New(a.Float(), series.Float, in.ModelNames[0]),
			series.New(b.Float(), series.Float, in.ModelNames[1]),
		)
		if block.Err != nil {
			return dataframe.DataFrame{}, block.Err
		}

		if first {
			out = block
			first = false
			continue
		}
		out = out.RBind(block)
		if out.Err != nil {
			return dataframe.DataFrame{}, out.Err
		}
	}

	return out, nil
}

func repeat(value string, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = value
	}
	return values
}
