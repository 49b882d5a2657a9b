// Package tables loads pose-estimation prediction tables and reshapes
// them into the frames the dashboard plots.
//
// Prediction CSVs carry a two-level column header: a keypoint row over a
// coordinate row, three columns (x, y, likelihood) per keypoint, with an
// optional trailing "set" label column. The package keeps the
// (keypoint, coordinate, model) identity of a column structured as a
// ColumnKey and only flattens to "<keypoint>_<coordinate>_<model>"
// strings when a frame is actually built.
package tables
