package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test resolver defaults
	if !cfg.Resolver.Enabled {
		t.Error("expected resolver to be enabled by default")
	}
	if cfg.Resolver.Tolerance != 0.0001 {
		t.Errorf("expected tolerance 0.0001, got %f", cfg.Resolver.Tolerance)
	}
	if cfg.Resolver.MaxChanges != 1024 {
		t.Errorf("expected max changes 1024, got %d", cfg.Resolver.MaxChanges)
	}

	// Test optimizer defaults
	if cfg.Optimizer.Enabled {
		t.Error("expected optimizer to be disabled by default")
	}
	if cfg.Optimizer.CacheSize != 16 {
		t.Errorf("expected cache size 16, got %d", cfg.Optimizer.CacheSize)
	}

	// Test viewer defaults
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Scene != "star-circle" {
		t.Errorf("expected scene star-circle, got %s", cfg.Viewer.Scene)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromYAML(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "procmesh.yaml")

	yamlContent := `
resolver:
  enabled: false
  tolerance: 0.001
  max_changes: 12

tessellation:
  tolerance: 0.5
  stroke_width: 2

viewer:
  width: 1920
  scene: poke

logging:
  level: debug
  log_file: "procmesh.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Resolver.Enabled {
		t.Error("expected resolver to be disabled")
	}
	if cfg.Resolver.Tolerance != 0.001 {
		t.Errorf("expected tolerance 0.001, got %f", cfg.Resolver.Tolerance)
	}
	if cfg.Resolver.MaxChanges != 12 {
		t.Errorf("expected max changes 12, got %d", cfg.Resolver.MaxChanges)
	}
	if cfg.Tessellation.StrokeWidth != 2 {
		t.Errorf("expected stroke width 2, got %f", cfg.Tessellation.StrokeWidth)
	}
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Scene != "poke" {
		t.Errorf("expected scene poke, got %s", cfg.Viewer.Scene)
	}
	if cfg.Logging.LogFile != "procmesh.log" {
		t.Errorf("expected log file 'procmesh.log', got %s", cfg.Logging.LogFile)
	}

	// Values absent from the file keep their defaults
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected default height 720, got %d", cfg.Viewer.Height)
	}
	if !cfg.Tessellation.NormalizeUV {
		t.Error("expected normalize_uv to keep its default")
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "procmesh.toml")

	tomlContent := `
[resolver]
max_changes = 3

[optimizer]
enabled = true
cache_size = 32

[viewer]
wireframe = true
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Resolver.MaxChanges != 3 {
		t.Errorf("expected max changes 3, got %d", cfg.Resolver.MaxChanges)
	}
	if !cfg.Optimizer.Enabled || cfg.Optimizer.CacheSize != 32 {
		t.Errorf("expected optimizer enabled with cache 32, got %+v", cfg.Optimizer)
	}
	if !cfg.Viewer.Wireframe {
		t.Error("expected wireframe from file")
	}
	if cfg.Resolver.Tolerance != 0.0001 {
		t.Errorf("expected default tolerance, got %f", cfg.Resolver.Tolerance)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownFormat(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "procmesh.ini")
	if err := os.WriteFile(configPath, []byte("width=1"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := loadFromFile(Default(), configPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/procmesh.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"out.yaml", "nested/out.toml"} {
		path := filepath.Join(tmpDir, name)

		cfg := Default()
		cfg.Viewer.Scene = "ribbon"
		cfg.Resolver.MaxChanges = 7
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("%s: save failed: %v", name, err)
		}

		loaded := Default()
		if err := loadFromFile(loaded, path); err != nil {
			t.Fatalf("%s: load failed: %v", name, err)
		}
		if loaded.Viewer.Scene != "ribbon" || loaded.Resolver.MaxChanges != 7 {
			t.Errorf("%s: values lost: scene %s, max %d", name, loaded.Viewer.Scene, loaded.Resolver.MaxChanges)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create procmesh.toml in current directory
	if err := os.WriteFile("procmesh.toml", []byte("[viewer]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path != "./procmesh.toml" {
		t.Errorf("expected ./procmesh.toml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "resolver flags",
			setup: func() {
				*flagTolerance = 0.5
				*flagMaxChanges = 0
				*flagNoResolve = true
			},
			verify: func(cfg *Config) {
				if cfg.Resolver.Tolerance != 0.5 {
					t.Errorf("expected tolerance 0.5, got %f", cfg.Resolver.Tolerance)
				}
				if cfg.Resolver.MaxChanges != 0 {
					t.Errorf("expected unbounded budget, got %d", cfg.Resolver.MaxChanges)
				}
				if cfg.Resolver.Enabled {
					t.Error("expected resolver disabled by -no-resolve")
				}
			},
			teardown: func() {
				*flagTolerance = 0
				*flagMaxChanges = -1
				*flagNoResolve = false
			},
		},
		{
			name: "unset budget keeps default",
			setup: func() {},
			verify: func(cfg *Config) {
				if cfg.Resolver.MaxChanges != 1024 {
					t.Errorf("expected default budget, got %d", cfg.Resolver.MaxChanges)
				}
			},
			teardown: func() {},
		},
		{
			name: "viewer flags",
			setup: func() {
				*flagScene = "poke"
				*flagWireframe = true
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Scene != "poke" {
					t.Errorf("expected scene poke, got %s", cfg.Viewer.Scene)
				}
				if !cfg.Viewer.Wireframe {
					t.Error("expected wireframe")
				}
				if cfg.Viewer.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Viewer.Width)
				}
				if cfg.Viewer.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagWireframe = false
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "optimize flag",
			setup: func() {
				*flagOptimize = true
			},
			verify: func(cfg *Config) {
				if !cfg.Optimizer.Enabled {
					t.Error("expected optimizer enabled")
				}
			},
			teardown: func() {
				*flagOptimize = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "procmesh.yaml")

	yamlContent := `
viewer:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestSectionConversions(t *testing.T) {
	cfg := Default()

	opts := cfg.Resolver.Options(nil)
	if opts.Tolerance != cfg.Resolver.Tolerance || opts.MaxChanges != cfg.Resolver.MaxChanges {
		t.Errorf("resolver options mismatch: %+v", opts)
	}

	s := cfg.Optimizer.Settings()
	if s.CacheSize != 16 || !s.RemoveDegenerate || !s.OptimizeVertexCache || !s.OptimizeVertexFetch {
		t.Errorf("optimizer settings mismatch: %+v", s)
	}
}
