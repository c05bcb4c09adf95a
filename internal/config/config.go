// Package config handles procmesh configuration loading and management.
package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/pkg/mesh"
	"github.com/Faultbox/procmesh/pkg/meshopt"
)

// Config holds all tool settings.
type Config struct {
	Resolver     ResolverConfig     `yaml:"resolver" toml:"resolver"`
	Tessellation TessellationConfig `yaml:"tessellation" toml:"tessellation"`
	Optimizer    OptimizerConfig    `yaml:"optimizer" toml:"optimizer"`
	Viewer       ViewerConfig       `yaml:"viewer" toml:"viewer"`
	Logging      LoggingConfig      `yaml:"logging" toml:"logging"`
}

// ResolverConfig holds coplanar overlap resolver settings.
type ResolverConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`         // Resolve scenes after building them
	Tolerance  float32 `yaml:"tolerance" toml:"tolerance"`     // Geometric tolerance
	MaxChanges int     `yaml:"max_changes" toml:"max_changes"` // Rewrite budget per call, <= 0 is unbounded
}

// TessellationConfig holds path tessellation settings.
type TessellationConfig struct {
	Tolerance   float32 `yaml:"tolerance" toml:"tolerance"`
	StrokeWidth float32 `yaml:"stroke_width" toml:"stroke_width"`
	NormalizeUV bool    `yaml:"normalize_uv" toml:"normalize_uv"`
}

// OptimizerConfig holds buffer optimization settings.
type OptimizerConfig struct {
	Enabled             bool `yaml:"enabled" toml:"enabled"`
	RemoveDegenerate    bool `yaml:"remove_degenerate" toml:"remove_degenerate"`
	OptimizeVertexCache bool `yaml:"optimize_vertex_cache" toml:"optimize_vertex_cache"`
	CacheSize           int  `yaml:"cache_size" toml:"cache_size"`
	OptimizeVertexFetch bool `yaml:"optimize_vertex_fetch" toml:"optimize_vertex_fetch"`
}

// ViewerConfig holds window and rendering settings.
type ViewerConfig struct {
	Width       int     `yaml:"width" toml:"width"`
	Height      int     `yaml:"height" toml:"height"`
	VSync       bool    `yaml:"vsync" toml:"vsync"`
	Wireframe   bool    `yaml:"wireframe" toml:"wireframe"`
	Scene       string  `yaml:"scene" toml:"scene"`
	RotateSpeed float32 `yaml:"rotate_speed" toml:"rotate_speed"` // Radians per second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Enabled:    true,
			Tolerance:  mesh.DefaultTolerance,
			MaxChanges: 1024,
		},
		Tessellation: TessellationConfig{
			Tolerance:   0.01,
			StrokeWidth: 0.05,
			NormalizeUV: true,
		},
		Optimizer: OptimizerConfig{
			Enabled:             false,
			RemoveDegenerate:    true,
			OptimizeVertexCache: true,
			CacheSize:           16,
			OptimizeVertexFetch: true,
		},
		Viewer: ViewerConfig{
			Width:       1280,
			Height:      720,
			VSync:       true,
			Scene:       "star-circle",
			RotateSpeed: 0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the resolver section into resolver options.
func (r ResolverConfig) Options(log *zap.Logger) mesh.ResolveOptions {
	return mesh.ResolveOptions{
		Tolerance:  r.Tolerance,
		MaxChanges: r.MaxChanges,
		Logger:     log,
	}
}

// Settings converts the optimizer section into optimizer settings.
func (o OptimizerConfig) Settings() meshopt.Settings {
	return meshopt.Settings{
		RemoveDegenerate:    o.RemoveDegenerate,
		OptimizeVertexCache: o.OptimizeVertexCache,
		CacheSize:           o.CacheSize,
		OptimizeVertexFetch: o.OptimizeVertexFetch,
	}
}
