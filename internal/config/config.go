// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Morph   MorphConfig   `yaml:"morph"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds window and rendering settings.
type DisplayConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	PointSize  float32 `yaml:"point_size"`
}

// MorphConfig holds morph animation tuning.
type MorphConfig struct {
	DurationTicks int     `yaml:"duration_ticks"` // length of one morph
	IntervalTicks int     `yaml:"interval_ticks"` // idle ticks between carousel morphs
	TargetSize    float32 `yaml:"target_size"`    // normalized bounding size of every mesh
}

// AssetsConfig holds model file paths.
type AssetsConfig struct {
	GLBPaths []string `yaml:"glb_paths"` // GLB files, morphed in listed order
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			PointSize:  2.0,
		},
		Morph: MorphConfig{
			DurationTicks: 120,
			IntervalTicks: 420,
			TargetSize:    2.0,
		},
		Assets: AssetsConfig{
			GLBPaths: []string{"models/shape1.glb", "models/shape2.glb"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
