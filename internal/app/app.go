package app

import (
	"fmt"
	"log/slog"
	"strconv"

	"posedash/internal/cache"
	"posedash/internal/config"
	"posedash/internal/exporter"
	"posedash/internal/files"
	"posedash/internal/infrastructure"
	"posedash/internal/metrics"
)

// App wires the dashboard helpers together: configuration, logging,
// file discovery, metric building, exporting and the memoization store.
// Discovery results are memoized by call arguments; call Refresh after
// files on disk may have changed.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	closeLogger func() error
	discovery   *files.Discovery
	builder     *metrics.Builder
	exporter    *exporter.Writer
	store       *cache.Store
}

// New builds an App from configuration.
func New(cfg *config.Config) (*App, error) {
	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &App{
		cfg:         cfg,
		logger:      logger,
		closeLogger: closer,
		discovery:   files.NewDiscovery(cfg.Paths.VideoPredsDir, logger),
		builder:     metrics.NewBuilder(logger),
		exporter:    exporter.NewWriter(cfg.Paths.ExportDir, logger),
		store:       cache.NewStore(cfg.Cache.StoreTTL()),
	}, nil
}

// Close releases the logger's resources.
func (a *App) Close() error {
	return a.closeLogger()
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Discovery returns the uncached file discovery layer.
func (a *App) Discovery() *files.Discovery { return a.discovery }

// Builder returns the metrics builder.
func (a *App) Builder() *metrics.Builder { return a.builder }

// Exporter returns the table exporter.
func (a *App) Exporter() *exporter.Writer { return a.exporter }

// Refresh drops every memoized listing so the next calls re-read disk.
func (a *App) Refresh() {
	a.store.InvalidateAll()
}

// ModelFolders lists the model folders below the configured root.
func (a *App) ModelFolders() ([]string, error) {
	key := cache.Key("model_folders", a.cfg.Paths.ModelRoot)
	if v, ok := a.store.Get(key); ok {
		return v.([]string), nil
	}

	folders, err := a.discovery.FindModelFolders(a.cfg.Paths.ModelRoot)
	if err != nil {
		return nil, err
	}
	a.store.Set(key, folders)
	return folders, nil
}

// ListLabeledPredictionFiles memoizes Discovery.ListLabeledPredictionFiles.
func (a *App) ListLabeledPredictionFiles(folders []string, useOOD bool) ([][]string, error) {
	parts := append([]string{"labeled_prediction_files", strconv.FormatBool(useOOD)}, folders...)
	key := cache.Key(parts...)
	if v, ok := a.store.Get(key); ok {
		return v.([][]string), nil
	}

	perFolder, err := a.discovery.ListLabeledPredictionFiles(folders, useOOD)
	if err != nil {
		return nil, err
	}
	a.store.Set(key, perFolder)
	return perFolder, nil
}

// ListVideoMetricFiles memoizes Discovery.ListVideoMetricFiles.
func (a *App) ListVideoMetricFiles(videoID string, folders []string) ([][]string, error) {
	parts := append([]string{"video_metric_files", videoID}, folders...)
	key := cache.Key(parts...)
	if v, ok := a.store.Get(key); ok {
		return v.([][]string), nil
	}

	perFolder, err := a.discovery.ListVideoMetricFiles(videoID, folders)
	if err != nil {
		return nil, err
	}
	a.store.Set(key, perFolder)
	return perFolder, nil
}

// ListAllVideos memoizes Discovery.ListAllVideos.
func (a *App) ListAllVideos(folders []string) ([]string, error) {
	key := cache.Key(append([]string{"all_videos"}, folders...)...)
	if v, ok := a.store.Get(key); ok {
		return v.([]string), nil
	}

	videos, err := a.discovery.ListAllVideos(folders)
	if err != nil {
		return nil, err
	}
	a.store.Set(key, videos)
	return videos, nil
}
