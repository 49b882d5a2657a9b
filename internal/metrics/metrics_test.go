package metrics

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorFrame is a precomputed metric table: index column plus one error
// column per keypoint.
func errorFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"img0.png", "img1.png"}, series.String, "frame"),
		series.New([]float64{1, 4}, series.Float, "A"),
		series.New([]float64{2, 8}, series.Float, "B"),
		series.New([]float64{3, 100}, series.Float, "C"),
	)
}

func TestComputePixelError(t *testing.T) {
	out, err := ComputePixelError(errorFrame(), []string{"A", "B", "C"}, "model_a")
	require.NoError(t, err)

	assert.Equal(t, []string{"img_file", "A", "B", "C", "model_name", "mean"}, out.Names())
	assert.Equal(t, []string{"model_a", "model_a"}, out.Col("model_name").Records())

	// mean excludes the last keypoint: (1+2)/2 and (4+8)/2
	assert.InDeltaSlice(t, []float64{1.5, 6}, out.Col("mean").Float(), 1e-9)
}

func TestComputePixelErrorNoKeypoints(t *testing.T) {
	_, err := ComputePixelError(errorFrame(), nil, "model_a")
	assert.Error(t, err)
}

func TestComputePixelErrorMissingColumn(t *testing.T) {
	_, err := ComputePixelError(errorFrame(), []string{"A", "missing", "C"}, "model_a")
	assert.Error(t, err)
}

// predictionFrame is a raw prediction table: index column plus
// (x, y, likelihood) triplets, optionally a trailing set column.
func predictionFrame(withSet bool) dataframe.DataFrame {
	cols := []series.Series{
		series.New([]string{"img0.png", "img1.png"}, series.String, "img"),
		series.New([]float64{10, 11}, series.Float, "A_x"),
		series.New([]float64{20, 21}, series.Float, "A_y"),
		series.New([]float64{1, 0.4}, series.Float, "A_likelihood"),
		series.New([]float64{30, 31}, series.Float, "B_x"),
		series.New([]float64{40, 41}, series.Float, "B_y"),
		series.New([]float64{2, 0.6}, series.Float, "B_likelihood"),
		series.New([]float64{50, 51}, series.Float, "C_x"),
		series.New([]float64{60, 61}, series.Float, "C_y"),
		series.New([]float64{3, 0.9}, series.Float, "C_likelihood"),
	}
	if withSet {
		cols = append(cols, series.New([]string{"train", "test"}, series.String, "set"))
	}
	return dataframe.New(cols...)
}

func TestComputeConfidence(t *testing.T) {
	out, err := ComputeConfidence(predictionFrame(false), []string{"A", "B", "C"}, "model_a")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "model_name", "mean"}, out.Names())
	assert.InDeltaSlice(t, []float64{1, 0.4}, out.Col("A").Float(), 1e-9)
	assert.InDeltaSlice(t, []float64{3, 0.9}, out.Col("C").Float(), 1e-9)

	// mean excludes the last keypoint: (1+2)/2 and (0.4+0.6)/2
	assert.InDeltaSlice(t, []float64{1.5, 0.5}, out.Col("mean").Float(), 1e-9)
}

func TestComputeConfidenceWithSetColumn(t *testing.T) {
	out, err := ComputeConfidence(predictionFrame(true), []string{"A", "B", "C"}, "model_a")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "model_name", "mean", "set", "img_file"}, out.Names())
	assert.Equal(t, []string{"train", "test"}, out.Col("set").Records())
	assert.Equal(t, []string{"img0.png", "img1.png"}, out.Col("img_file").Records())
}

func TestComputeConfidenceShapeMismatch(t *testing.T) {
	tests := []struct {
		name      string
		frame     dataframe.DataFrame
		keypoints []string
	}{
		{
			name:      "keypoint count disagrees",
			frame:     predictionFrame(false),
			keypoints: []string{"A", "B"},
		},
		{
			name: "column count not triplets plus optional one",
			frame: dataframe.New(
				series.New([]string{"img0.png"}, series.String, "img"),
				series.New([]float64{1}, series.Float, "A_x"),
				series.New([]float64{2}, series.Float, "A_y"),
			),
			keypoints: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeConfidence(tt.frame, tt.keypoints, "model_a")
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestComputeConfidenceNoKeypoints(t *testing.T) {
	// an index-plus-set frame satisfies the triplet arithmetic for zero
	// keypoints; the empty keypoint list must still be rejected cleanly
	frame := dataframe.New(
		series.New([]string{"img0.png"}, series.String, "img"),
		series.New([]string{"train"}, series.String, "set"),
	)

	_, err := ComputeConfidence(frame, nil, "model_a")
	assert.Error(t, err)
}

func TestComputeConfidenceSingleKeypointMeanIsNaN(t *testing.T) {
	frame := dataframe.New(
		series.New([]string{"img0.png"}, series.String, "img"),
		series.New([]float64{1}, series.Float, "A_x"),
		series.New([]float64{2}, series.Float, "A_y"),
		series.New([]float64{0.9}, series.Float, "A_likelihood"),
	)

	out, err := ComputeConfidence(frame, []string{"A"}, "model_a")
	require.NoError(t, err)

	// nothing remains once the last keypoint is excluded
	assert.True(t, math.IsNaN(out.Col("mean").Float()[0]))
}
