// Package metrics derives comparison tables from per-model metric
// files: pixel error, confidence, temporal norm and pca reprojection
// errors. All functions are pure transforms over their input frames;
// memoization, when wanted, is layered on by the caller.
package metrics
