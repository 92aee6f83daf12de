// Package config handles application configuration loading and management.
package config

// Config holds all text3d settings.
type Config struct {
	Text     TextConfig     `yaml:"text"`
	Geometry GeometryConfig `yaml:"geometry"`
	Export   ExportConfig   `yaml:"export"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TextConfig holds font and layout settings.
type TextConfig struct {
	FontSize         float64 `yaml:"font_size"`         // Points
	CharacterSpacing float64 `yaml:"character_spacing"` // Units between glyphs
	CharacterWidth   float64 `yaml:"character_width"`   // Fallback glyph width
	LineSpacing      float64 `yaml:"line_spacing"`      // Line height multiplier
	MaxTextLength    int     `yaml:"max_text_length"`
}

// GeometryConfig holds extrusion and bevel settings.
type GeometryConfig struct {
	ExtrusionDepth  float64 `yaml:"extrusion_depth"`
	BevelDepth      float64 `yaml:"bevel_depth"`
	BevelResolution int     `yaml:"bevel_resolution"`
	MaxVertices     int     `yaml:"max_vertices"` // Advisory threshold, warn only
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	OutputDir string   `yaml:"output_dir"`
	Format    string   `yaml:"format"`
	Scale     float64  `yaml:"scale"`
	Formats   []string `yaml:"formats"` // Supported format set
}

// PreviewConfig holds offline preview render settings.
type PreviewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Text: TextConfig{
			FontSize:         72,
			CharacterSpacing: 2.0,
			CharacterWidth:   10.0,
			LineSpacing:      1.2,
			MaxTextLength:    1000,
		},
		Geometry: GeometryConfig{
			ExtrusionDepth:  5.0,
			BevelDepth:      0.5,
			BevelResolution: 4,
			MaxVertices:     100000,
		},
		Export: ExportConfig{
			OutputDir: "output",
			Format:    "STL",
			Scale:     1.0,
			Formats:   []string{"STL", "OBJ", "PLY", "GLTF"},
		},
		Preview: PreviewConfig{
			Width:  800,
			Height: 600,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
