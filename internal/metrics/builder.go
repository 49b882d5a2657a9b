package metrics

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
)

// Bucket keys of the merged comparison tables, keyed by metric category.
const (
	PixelErrorKey    = "pixel error"
	ConfidenceKey    = "confidence"
	TemporalNormKey  = "temporal norm"
	PCAMultiviewKey  = "pca multiview"
	PCASingleviewKey = "pca singleview"
)

// MetricFrame is one metric file's table, tagged with the metric name
// it was discovered under. The name drives bucket dispatch.
type MetricFrame struct {
	Name  string
	Frame dataframe.DataFrame
}

// ModelMetrics groups the metric frames loaded for one model.
type ModelMetrics struct {
	Model  string
	Frames []MetricFrame
}

// Builder assembles per-category comparison tables from every model's
// precomputed metric files.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a metrics builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger.With(slog.String("component", "metrics_builder"))}
}

// Build dispatches every metric frame into its bucket and concatenates
// each bucket row-wise across models. Frames whose name mentions
// "confidence" additionally feed the confidence bucket through
// ComputeConfidence. Error buckets are chosen by the first substring
// match in the order single, multi, temporal, pixel; a frame matching
// none of the four is left out of the error buckets.
func (b *Builder) Build(models []ModelMetrics, keypointNames []string) (map[string]dataframe.DataFrame, error) {
	log := b.logger.With(slog.String("run_id", uuid.NewString()))

	buckets := make(map[string][]dataframe.DataFrame)
	for _, mm := range models {
		for _, mf := range mm.Frames {
			if strings.Contains(mf.Name, "confidence") {
				conf, err := ComputeConfidence(mf.Frame, keypointNames, mm.Model)
				if err != nil {
					return nil, fmt.Errorf("confidence for model %s, metric %s: %w", mm.Model, mf.Name, err)
				}
				buckets[ConfidenceKey] = append(buckets[ConfidenceKey], conf)
			}

			bucket, ok := classify(mf.Name)
			if !ok {
				log.Debug("metric matches no error bucket",
					slog.String("model", mm.Model),
					slog.String("metric", mf.Name))
				continue
			}
			shaped, err := ComputePixelError(mf.Frame, keypointNames, mm.Model)
			if err != nil {
				return nil, fmt.Errorf("error table for model %s, metric %s: %w", mm.Model, mf.Name, err)
			}
			buckets[bucket] = append(buckets[bucket], shaped)
		}
	}

	out := make(map[string]dataframe.DataFrame, len(buckets))
	for bucket, frames := range buckets {
		merged := frames[0]
		for _, frame := range frames[1:] {
			merged = merged.RBind(frame)
			if merged.Err != nil {
				return nil, fmt.Errorf("failed to concatenate %s bucket: %w", bucket, merged.Err)
			}
		}
		out[bucket] = merged
	}

	log.Info("built precomputed metric tables",
		slog.Int("models", len(models)),
		slog.Int("buckets", len(out)))
	return out, nil
}

// classify maps a metric file name onto its error bucket. First match
// wins, checked single, then multi, then temporal, then pixel.
func classify(metricName string) (string, bool) {
	switch {
	case strings.Contains(metricName, "single"):
		return PCASingleviewKey, true
	case strings.Contains(metricName, "multi"):
		return PCAMultiviewKey, true
	case strings.Contains(metricName, "temporal"):
		return TemporalNormKey, true
	case strings.Contains(metricName, "pixel"):
		return PixelErrorKey, true
	}
	return "", false
}
