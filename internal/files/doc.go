// Package files provides discovery of prediction and metric files under
// pose-estimation model output folders.
//
// The on-disk layout it relies on:
//
//	<model_folder>/*predictions*            labeled prediction files
//	<model_folder>/video_preds/*            per-video metric files
//	<model_root>/<experiment>/<version>/    model folders, exactly two
//	                                        levels below the root
//
// Naming conventions: "new" marks out-of-distribution prediction files,
// "_temporal_norm.csv" marks temporal norm metrics, and "pca" in a video
// metric file name excludes it from video identifier derivation.
//
// Missing directories are reported as wrapped filesystem errors; callers
// are expected to validate folder selections before listing.
package files
