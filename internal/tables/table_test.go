package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const twoHeaderCSV = `,paw1,paw1,paw1,paw2,paw2,paw2,paw3,paw3,paw3
,x,y,likelihood,x,y,likelihood,x,y,likelihood
img0.png,1.0,2.0,0.9,3.0,4.0,0.8,5.0,6.0,0.7
img1.png,1.5,2.5,0.95,3.5,4.5,0.85,5.5,6.5,0.75
`

func TestLoadPredictionTable(t *testing.T) {
	path := writeCSV(t, "predictions.csv", twoHeaderCSV)

	table, err := LoadPredictionTable(path)
	require.NoError(t, err)

	assert.Equal(t, "img_file", table.Index)
	assert.Equal(t, []string{"paw1", "paw2", "paw3"}, table.KeypointNames())
	assert.Equal(t, 10, table.Frame.Ncol())
	assert.Equal(t, 2, table.Frame.Nrow())
	assert.Equal(t, []string{
		"img_file",
		"paw1_x", "paw1_y", "paw1_likelihood",
		"paw2_x", "paw2_y", "paw2_likelihood",
		"paw3_x", "paw3_y", "paw3_likelihood",
	}, table.Frame.Names())
}

func TestLoadPredictionTableScorerRow(t *testing.T) {
	content := "scorer,heatmap_tracker,heatmap_tracker,heatmap_tracker\n" +
		"bodyparts,paw1,paw1,paw1\n" +
		"coords,x,y,likelihood\n" +
		"img0.png,1.0,2.0,0.9\n"
	path := writeCSV(t, "predictions.csv", content)

	table, err := LoadPredictionTable(path)
	require.NoError(t, err)

	assert.Equal(t, "bodyparts_coords", table.Index)
	assert.Equal(t, []string{"paw1"}, table.KeypointNames())
	assert.Equal(t, []string{"bodyparts_coords", "paw1_x", "paw1_y", "paw1_likelihood"}, table.Frame.Names())
}

func TestLoadPredictionTableWithSetColumn(t *testing.T) {
	content := `,paw1,paw1,paw1,set
,x,y,likelihood,
img0.png,1.0,2.0,0.9,train
img1.png,1.5,2.5,0.95,test
`
	path := writeCSV(t, "predictions.csv", content)

	table, err := LoadPredictionTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"paw1"}, table.KeypointNames())
	assert.Equal(t, "set", table.Keys[len(table.Keys)-1].FullName())
}

func TestLoadPredictionTableMissingHeaders(t *testing.T) {
	path := writeCSV(t, "predictions.csv", "img0.png,1.0\n")
	_, err := LoadPredictionTable(path)
	assert.Error(t, err)
}

func TestLoadPredictionTableMissingFile(t *testing.T) {
	_, err := LoadPredictionTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoadMetricTable(t *testing.T) {
	content := "img_file,paw1,paw2,set\nimg0.png,1.0,2.0,train\nimg1.png,3.0,4.0,test\n"
	path := writeCSV(t, "pixel_error.csv", content)

	df, err := LoadMetricTable(path)
	require.NoError(t, err)

	assert.Equal(t, 4, df.Ncol())
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"img_file", "paw1", "paw2", "set"}, df.Names())
}

func TestColumnKeyFullName(t *testing.T) {
	tests := []struct {
		name string
		key  ColumnKey
		want string
	}{
		{name: "full triple", key: ColumnKey{"paw1", "x", "model_a"}, want: "paw1_x_model_a"},
		{name: "no model", key: ColumnKey{Keypoint: "paw1", Coordinate: "y"}, want: "paw1_y"},
		{name: "keypoint only", key: ColumnKey{Keypoint: "set"}, want: "set"},
		{name: "whitespace stripped", key: ColumnKey{Keypoint: " paw1 ", Coordinate: " x "}, want: "paw1_x"},
		{name: "empty", key: ColumnKey{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.FullName())
		})
	}
}

func TestColumnNames(t *testing.T) {
	got := ColumnNames("paw1", "x", []string{"model_a", "model_b"})
	assert.Equal(t, []string{"paw1_x_model_a", "paw1_x_model_b"}, got)
}
