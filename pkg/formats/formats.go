// Package formats writes polygon meshes to standard 3D interchange
// formats: STL (binary/ASCII), OBJ (+MTL), PLY (ASCII/binary) and
// glTF 2.0 (JSON + external buffer).
package formats

import (
	"errors"
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/geometry"
	"github.com/Faultbox/text3d/pkg/math"
)

// Export errors.
var (
	ErrExport     = errors.New("export failed")
	ErrValidation = errors.New("export validation failed")
)

// Format identifies a mesh export format.
type Format int

// Supported formats.
const (
	FormatSTL Format = iota
	FormatOBJ
	FormatPLY
	FormatGLTF
)

// String returns the canonical upper-case format name.
func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "STL"
	case FormatOBJ:
		return "OBJ"
	case FormatPLY:
		return "PLY"
	case FormatGLTF:
		return "GLTF"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatSTL:
		return ".stl"
	case FormatOBJ:
		return ".obj"
	case FormatPLY:
		return ".ply"
	case FormatGLTF:
		return ".gltf"
	default:
		return ""
	}
}

// ParseFormat parses a format name, case insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "STL":
		return FormatSTL, nil
	case "OBJ":
		return FormatOBJ, nil
	case "PLY":
		return FormatPLY, nil
	case "GLTF":
		return FormatGLTF, nil
	default:
		return 0, fmt.Errorf("%w: unsupported format: %s", ErrExport, name)
	}
}

// STLOptions controls STL output.
type STLOptions struct {
	ASCII bool
}

// OBJOptions controls OBJ output.
type OBJOptions struct {
	Materials    bool
	MaterialName string
}

// PLYOptions controls PLY output.
type PLYOptions struct {
	ASCII bool
	// Colors holds one RGB triplet per vertex. Vertices beyond its
	// length default to mid-gray.
	Colors [][3]uint8
}

// GLTFOptions controls glTF output.
type GLTFOptions struct {
	// Binary requests GLB packaging, which is not supported and fails
	// with ErrExport.
	Binary bool
}

// Options carries the per-format settings for one export call.
type Options struct {
	// Scale uniformly multiplies every vertex coordinate before
	// encoding. Zero means the exporter default.
	Scale float64

	STL  STLOptions
	OBJ  OBJOptions
	PLY  PLYOptions
	GLTF GLTFOptions
}

// Config holds exporter defaults.
type Config struct {
	OutputDir    string
	DefaultScale float64
	Supported    []Format
}

// DefaultConfig returns the standard exporter settings.
func DefaultConfig() Config {
	return Config{
		OutputDir:    "output",
		DefaultScale: 1.0,
		Supported:    []Format{FormatSTL, FormatOBJ, FormatPLY, FormatGLTF},
	}
}

// Exporter writes meshes to files. It holds only immutable configuration
// and is safe for concurrent use.
type Exporter struct {
	outputDir string
	scale     float64
	supported map[Format]bool
	log       *zap.Logger
}

// NewExporter creates an Exporter, ensuring the output directory exists.
// A nil logger disables logging.
func NewExporter(cfg Config, log *zap.Logger) (*Exporter, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.DefaultScale == 0 {
		cfg.DefaultScale = 1.0
	}
	if len(cfg.Supported) == 0 {
		cfg.Supported = DefaultConfig().Supported
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %v", ErrExport, err)
	}

	supported := make(map[Format]bool, len(cfg.Supported))
	for _, f := range cfg.Supported {
		supported[f] = true
	}

	return &Exporter{
		outputDir: cfg.OutputDir,
		scale:     cfg.DefaultScale,
		supported: supported,
		log:       log,
	}, nil
}

// ExportMesh writes the mesh to <outputDir>/<name><ext> in the given
// format and returns the written path. The mesh is validated before
// encoding and the written artifact is sanity-checked afterwards.
func (e *Exporter) ExportMesh(mesh *geometry.Mesh, name string, format Format, opts Options) (string, error) {
	if !e.supported[format] {
		return "", fmt.Errorf("%w: unsupported format: %s", ErrExport, format)
	}

	if mesh == nil {
		return "", fmt.Errorf("%w: no mesh provided", ErrValidation)
	}
	if err := mesh.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	scale := opts.Scale
	if scale == 0 {
		scale = e.scale
	}
	scaled, err := applyScale(mesh, scale)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.outputDir, name+format.Ext())

	switch format {
	case FormatSTL:
		err = e.exportSTL(scaled, path, opts.STL)
	case FormatOBJ:
		err = e.exportOBJ(scaled, path, opts.OBJ)
	case FormatPLY:
		err = e.exportPLY(scaled, path, opts.PLY)
	case FormatGLTF:
		err = e.exportGLTF(scaled, path, opts.GLTF)
	}
	if err != nil {
		return "", err
	}

	if err := validateArtifact(path, format); err != nil {
		return "", err
	}

	e.log.Info("exported mesh",
		zap.String("format", format.String()),
		zap.String("path", path),
		zap.Int("vertices", len(scaled.Vertices)),
		zap.Int("faces", len(scaled.Faces)))

	return path, nil
}

// applyScale returns the mesh with every vertex coordinate multiplied by
// scale. Faces and normals are shared with the input; a scale of 1.0
// returns the input unchanged.
func applyScale(mesh *geometry.Mesh, scale float64) (*geometry.Mesh, error) {
	if stdmath.IsNaN(scale) || stdmath.IsInf(scale, 0) || scale <= 0 {
		return nil, fmt.Errorf("%w: scale must be a positive number", ErrExport)
	}
	if scale == 1.0 {
		return mesh, nil
	}
	scaled := &geometry.Mesh{
		Vertices: make([]math.Vec3, len(mesh.Vertices)),
		Faces:    mesh.Faces,
		Normals:  mesh.Normals,
	}
	for i, v := range mesh.Vertices {
		scaled.Vertices[i] = v.Scale(scale)
	}
	return scaled, nil
}

// ExportInfo describes an exported file.
type ExportInfo struct {
	Path   string
	Size   int64
	Format string
}

// GetExportInfo stats an exported file.
func GetExportInfo(path string) (ExportInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return ExportInfo{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return ExportInfo{
		Path:   path,
		Size:   fi.Size(),
		Format: strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")),
	}, nil
}
