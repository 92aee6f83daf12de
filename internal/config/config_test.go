package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Text.FontSize != 72 {
		t.Errorf("expected font size 72, got %f", cfg.Text.FontSize)
	}
	if cfg.Text.CharacterSpacing != 2.0 {
		t.Errorf("expected character spacing 2.0, got %f", cfg.Text.CharacterSpacing)
	}
	if cfg.Text.MaxTextLength != 1000 {
		t.Errorf("expected max text length 1000, got %d", cfg.Text.MaxTextLength)
	}

	if cfg.Geometry.ExtrusionDepth != 5.0 {
		t.Errorf("expected extrusion depth 5.0, got %f", cfg.Geometry.ExtrusionDepth)
	}
	if cfg.Geometry.BevelDepth != 0.5 {
		t.Errorf("expected bevel depth 0.5, got %f", cfg.Geometry.BevelDepth)
	}
	if cfg.Geometry.BevelResolution != 4 {
		t.Errorf("expected bevel resolution 4, got %d", cfg.Geometry.BevelResolution)
	}

	if cfg.Export.Format != "STL" {
		t.Errorf("expected default format STL, got %s", cfg.Export.Format)
	}
	if cfg.Export.Scale != 1.0 {
		t.Errorf("expected scale 1.0, got %f", cfg.Export.Scale)
	}
	if len(cfg.Export.Formats) != 4 {
		t.Errorf("expected 4 supported formats, got %d", len(cfg.Export.Formats))
	}

	if cfg.Preview.Width != 800 || cfg.Preview.Height != 600 {
		t.Errorf("expected preview 800x600, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
text:
  font_size: 96
  character_spacing: 1.5

geometry:
  extrusion_depth: 8.0
  bevel_depth: 1.0
  bevel_resolution: 6

export:
  output_dir: "meshes"
  format: "OBJ"
  scale: 2.0

logging:
  level: "debug"
  log_file: "text3d.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Text.FontSize != 96 {
		t.Errorf("expected font size 96, got %f", cfg.Text.FontSize)
	}
	if cfg.Text.CharacterSpacing != 1.5 {
		t.Errorf("expected character spacing 1.5, got %f", cfg.Text.CharacterSpacing)
	}

	if cfg.Geometry.ExtrusionDepth != 8.0 {
		t.Errorf("expected extrusion depth 8.0, got %f", cfg.Geometry.ExtrusionDepth)
	}
	if cfg.Geometry.BevelResolution != 6 {
		t.Errorf("expected bevel resolution 6, got %d", cfg.Geometry.BevelResolution)
	}

	if cfg.Export.OutputDir != "meshes" {
		t.Errorf("expected output dir 'meshes', got %s", cfg.Export.OutputDir)
	}
	if cfg.Export.Format != "OBJ" {
		t.Errorf("expected format OBJ, got %s", cfg.Export.Format)
	}
	if cfg.Export.Scale != 2.0 {
		t.Errorf("expected scale 2.0, got %f", cfg.Export.Scale)
	}

	// Untouched sections keep their defaults.
	if cfg.Preview.Width != 800 {
		t.Errorf("expected preview width 800, got %d", cfg.Preview.Width)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "text3d.log" {
		t.Errorf("expected log file 'text3d.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
geometry:
  extrusion_depth: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
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
			name: "depth flag",
			setup: func() {
				*flagDepth = 7.5
			},
			verify: func(cfg *Config) {
				if cfg.Geometry.ExtrusionDepth != 7.5 {
					t.Errorf("expected depth 7.5, got %f", cfg.Geometry.ExtrusionDepth)
				}
			},
			teardown: func() {
				*flagDepth = 0
			},
		},
		{
			name: "bevel flag zero disables",
			setup: func() {
				*flagBevel = 0
			},
			verify: func(cfg *Config) {
				if cfg.Geometry.BevelDepth != 0 {
					t.Errorf("expected bevel 0, got %f", cfg.Geometry.BevelDepth)
				}
			},
			teardown: func() {
				*flagBevel = -1
			},
		},
		{
			name: "format and output flags",
			setup: func() {
				*flagFormat = "PLY"
				*flagOutput = "out"
			},
			verify: func(cfg *Config) {
				if cfg.Export.Format != "PLY" {
					t.Errorf("expected format PLY, got %s", cfg.Export.Format)
				}
				if cfg.Export.OutputDir != "out" {
					t.Errorf("expected output dir 'out', got %s", cfg.Export.OutputDir)
				}
			},
			teardown: func() {
				*flagFormat = ""
				*flagOutput = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
geometry:
  extrusion_depth: 3.0
  bevel_depth: 0.25
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDepth = 9.0
	defer func() {
		*flagConfig = ""
		*flagDepth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Depth should come from the flag, not the file.
	if cfg.Geometry.ExtrusionDepth != 9.0 {
		t.Errorf("expected depth 9.0 from flag, got %f", cfg.Geometry.ExtrusionDepth)
	}

	// Bevel should come from the file since no flag override.
	if cfg.Geometry.BevelDepth != 0.25 {
		t.Errorf("expected bevel 0.25 from file, got %f", cfg.Geometry.BevelDepth)
	}
}
