package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// Its values match DefaultTuningConfig.
const DefaultConfigPath = "config/tuning.defaults.json"

// Merge strategy names accepted in merge_strategy.
var mergeStrategies = []string{"greedy", "agglomerative"}

// TuningConfig represents the root configuration for contact tracking.
// Every field is optional; the Get* methods fall back to the defaults.
type TuningConfig struct {
	// Contact merging
	TemporalRatio *float64 `json:"temporal_ratio,omitempty"`
	SpatialRatio  *float64 `json:"spatial_ratio,omitempty"`
	SurfaceRatio  *float64 `json:"surface_ratio,omitempty"`
	GapFrames     *int     `json:"gap_frames,omitempty"`
	MergeStrategy *string  `json:"merge_strategy,omitempty"` // "greedy" or "agglomerative"

	// Contact validation
	StartForcePercentage *float64 `json:"start_force_percentage,omitempty"`
	EndForcePercentage   *float64 `json:"end_force_percentage,omitempty"`

	// Extraction and adjacency
	OverlapTolerance *float64 `json:"overlap_tolerance,omitempty"`
	Padding          *int     `json:"padding,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	var c TuningConfig
	return &TuningConfig{
		TemporalRatio:        ptrFloat64(c.GetTemporalRatio()),
		SpatialRatio:         ptrFloat64(c.GetSpatialRatio()),
		SurfaceRatio:         ptrFloat64(c.GetSurfaceRatio()),
		GapFrames:            ptrInt(c.GetGapFrames()),
		MergeStrategy:        ptrString(c.GetMergeStrategy()),
		StartForcePercentage: ptrFloat64(c.GetStartForcePercentage()),
		EndForcePercentage:   ptrFloat64(c.GetEndForcePercentage()),
		OverlapTolerance:     ptrFloat64(c.GetOverlapTolerance()),
		Padding:              ptrInt(c.GetPadding()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	for name, v := range map[string]*float64{
		"temporal_ratio": c.TemporalRatio,
		"spatial_ratio":  c.SpatialRatio,
		"surface_ratio":  c.SurfaceRatio,
	} {
		if v != nil && !(*v > 0) {
			return fmt.Errorf("%s must be positive, got %f", name, *v)
		}
	}

	for name, v := range map[string]*float64{
		"start_force_percentage": c.StartForcePercentage,
		"end_force_percentage":   c.EndForcePercentage,
	} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", name, *v)
		}
	}

	if c.GapFrames != nil && *c.GapFrames < 0 {
		return fmt.Errorf("gap_frames must be non-negative, got %d", *c.GapFrames)
	}
	if c.OverlapTolerance != nil && *c.OverlapTolerance < 0 {
		return fmt.Errorf("overlap_tolerance must be non-negative, got %f", *c.OverlapTolerance)
	}
	if c.Padding != nil && *c.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", *c.Padding)
	}

	if c.MergeStrategy != nil && *c.MergeStrategy != "" {
		known := false
		for _, s := range mergeStrategies {
			if *c.MergeStrategy == s {
				known = true
			}
		}
		if !known {
			return fmt.Errorf("merge_strategy must be one of %v, got %q", mergeStrategies, *c.MergeStrategy)
		}
	}

	return nil
}

// GetTemporalRatio returns the temporal_ratio value or the default.
func (c *TuningConfig) GetTemporalRatio() float64 {
	if c.TemporalRatio == nil {
		return 0.5 // default
	}
	return *c.TemporalRatio
}

// GetSpatialRatio returns the spatial_ratio value or the default.
func (c *TuningConfig) GetSpatialRatio() float64 {
	if c.SpatialRatio == nil {
		return 1.25 // default
	}
	return *c.SpatialRatio
}

// GetSurfaceRatio returns the surface_ratio value or the default.
func (c *TuningConfig) GetSurfaceRatio() float64 {
	if c.SurfaceRatio == nil {
		return 0.25 // default
	}
	return *c.SurfaceRatio
}

// GetGapFrames returns the gap_frames value or the default.
func (c *TuningConfig) GetGapFrames() int {
	if c.GapFrames == nil {
		return 5 // default
	}
	return *c.GapFrames
}

// GetMergeStrategy returns the merge_strategy value or the default.
func (c *TuningConfig) GetMergeStrategy() string {
	if c.MergeStrategy == nil || *c.MergeStrategy == "" {
		return "greedy" // default
	}
	return *c.MergeStrategy
}

// GetStartForcePercentage returns the start_force_percentage value or the default.
func (c *TuningConfig) GetStartForcePercentage() float64 {
	if c.StartForcePercentage == nil {
		return 0.25 // default
	}
	return *c.StartForcePercentage
}

// GetEndForcePercentage returns the end_force_percentage value or the default.
func (c *TuningConfig) GetEndForcePercentage() float64 {
	if c.EndForcePercentage == nil {
		return 0.25 // default
	}
	return *c.EndForcePercentage
}

// GetOverlapTolerance returns the overlap_tolerance value or the default.
func (c *TuningConfig) GetOverlapTolerance() float64 {
	if c.OverlapTolerance == nil {
		return 15 // default
	}
	return *c.OverlapTolerance
}

// GetPadding returns the padding value or the default.
func (c *TuningConfig) GetPadding() int {
	if c.Padding == nil {
		return 1 // default
	}
	return *c.Padding
}
