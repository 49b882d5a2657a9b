package files

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// predictionsMarker tags labeled prediction files inside a model folder.
	predictionsMarker = "predictions"
	// oodMarker tags out-of-distribution prediction files.
	oodMarker = "new"
	// temporalNormSuffix is the file suffix produced for temporal norm metrics.
	temporalNormSuffix = "_temporal_norm.csv"
	// modelFolderDepth is how many levels below the root model folders live.
	modelFolderDepth = 2
)

// Discovery locates prediction and metric files under model output folders.
type Discovery struct {
	videoPredsDir string
	logger        *slog.Logger
}

// NewDiscovery creates a new file discovery instance. videoPredsDir is
// the per-model subdirectory holding video metric files ("video_preds").
func NewDiscovery(videoPredsDir string, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	if videoPredsDir == "" {
		videoPredsDir = "video_preds"
	}
	return &Discovery{
		videoPredsDir: videoPredsDir,
		logger:        logger.With(slog.String("component", "discovery")),
	}
}

// ListLabeledPredictionFiles returns, per folder, the plain files whose
// name contains "predictions". A file is included only when the presence
// of the "new" marker in its name matches useOOD. Files come back in
// directory listing order.
func (d *Discovery) ListLabeledPredictionFiles(folders []string, useOOD bool) ([][]string, error) {
	perFolder := make([][]string, 0, len(folders))
	for _, folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", folder, err)
		}

		var matched []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.Contains(name, predictionsMarker) {
				continue
			}
			if strings.Contains(name, oodMarker) == useOOD {
				matched = append(matched, name)
			}
		}
		d.logger.Debug("listed labeled prediction files",
			slog.String("folder", folder),
			slog.Bool("use_ood", useOOD),
			slog.Int("count", len(matched)))
		perFolder = append(perFolder, matched)
	}
	return perFolder, nil
}

// ListVideoMetricFiles returns, per folder, the files under the folder's
// video_preds subdirectory whose name contains videoID.
func (d *Discovery) ListVideoMetricFiles(videoID string, folders []string) ([][]string, error) {
	perFolder := make([][]string, 0, len(folders))
	for _, folder := range folders {
		dir := filepath.Join(folder, d.videoPredsDir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		var matched []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.Contains(entry.Name(), videoID) {
				matched = append(matched, entry.Name())
			}
		}
		perFolder = append(perFolder, matched)
	}
	return perFolder, nil
}

// ListAllVideos derives the set of video identifiers predicted on by any
// of the given model folders. Temporal norm files contribute their name
// up to the "_temporal_norm.csv" suffix; other csv files contribute only
// when their name mentions neither "temporal" nor "pca". The union is
// returned sorted and de-duplicated.
func (d *Discovery) ListAllVideos(folders []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, folder := range folders {
		dir := filepath.Join(folder, d.videoPredsDir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			switch {
			case strings.Contains(name, "temporal"):
				seen[strings.Split(name, temporalNormSuffix)[0]] = struct{}{}
			case !strings.Contains(name, "pca"):
				seen[strings.Split(name, ".csv")[0]] = struct{}{}
			}
		}
	}

	videos := make([]string, 0, len(seen))
	for v := range seen {
		videos = append(videos, v)
	}
	sort.Strings(videos)
	return videos, nil
}

// FindModelFolders returns all directories exactly two levels below root.
// A root with no directories at that depth yields an empty result.
func (d *Discovery) FindModelFolders(root string) ([]string, error) {
	root = strings.TrimSuffix(root, string(os.PathSeparator))
	rootDepth := strings.Count(root, string(os.PathSeparator))

	var folders []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if strings.Count(path, string(os.PathSeparator))-rootDepth == modelFolderDepth {
			folders = append(folders, path)
			// model folders are leaves as far as discovery is concerned
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk model root %s: %w", root, err)
	}

	d.logger.Debug("found model folders",
		slog.String("root", root),
		slog.Int("count", len(folders)))
	return folders, nil
}

// FormatModelFolderLabel returns the last two path segments of a model
// folder joined by the path separator, for display in the dashboard.
func FormatModelFolderLabel(folder string) string {
	folder = strings.TrimSuffix(folder, string(os.PathSeparator))
	return filepath.Join(filepath.Base(filepath.Dir(folder)), filepath.Base(folder))
}
