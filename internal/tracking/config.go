package tracking

import (
	"fmt"

	"github.com/banshee-data/pawlabel/internal/config"
	"github.com/banshee-data/pawlabel/internal/contact"
	"github.com/banshee-data/pawlabel/internal/tracking/l3merge"
)

// Config holds every tunable of a tracking run.
type Config struct {
	// Tolerance is the adjacency pre-filter half-width in columns.
	Tolerance float64
	Merge     l3merge.Params
	Strategy  l3merge.MergeStrategy
	// Contact carries padding and validation thresholds.
	Contact contact.Options
}

// DefaultConfig returns the built-in defaults. It does not read
// config/tuning.defaults.json, so it is safe outside the repository.
func DefaultConfig() Config {
	cfg, err := ConfigFromTuning(config.DefaultTuningConfig())
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) (Config, error) {
	strategy, err := l3merge.StrategyByName(cfg.GetMergeStrategy())
	if err != nil {
		return Config{}, fmt.Errorf("tracking config: %w", err)
	}
	return Config{
		Tolerance: cfg.GetOverlapTolerance(),
		Merge: l3merge.Params{
			TemporalRatio: cfg.GetTemporalRatio(),
			SpatialRatio:  cfg.GetSpatialRatio(),
			SurfaceRatio:  cfg.GetSurfaceRatio(),
			GapFrames:     cfg.GetGapFrames(),
		},
		Strategy: strategy,
		Contact: contact.Options{
			Padding:              cfg.GetPadding(),
			StartForcePercentage: cfg.GetStartForcePercentage(),
			EndForcePercentage:   cfg.GetEndForcePercentage(),
		},
	}, nil
}
