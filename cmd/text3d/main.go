// text3d converts text into extruded 3D meshes and writes them in
// common interchange formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/internal/config"
	"github.com/Faultbox/text3d/internal/logger"
	"github.com/Faultbox/text3d/internal/preview"
	"github.com/Faultbox/text3d/internal/text"
	"github.com/Faultbox/text3d/pkg/formats"
	"github.com/Faultbox/text3d/pkg/geometry"
	"github.com/Faultbox/text3d/pkg/math"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "preview":
		cmdPreview(args)
	case "info":
		cmdInfo(args)
	case "formats":
		cmdFormats()
	case "version":
		fmt.Printf("text3d %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`text3d - text to 3D mesh generator

Usage:
  text3d <command> [options] <text>

Commands:
  generate <text>   Generate a mesh and export it
  preview <text>    Render a shaded PNG preview of the mesh
  info <text>       Print mesh statistics without exporting
  formats           List supported export formats
  version           Print the tool version

Options:
  -font <path>      TTF/OTF font file (required for mesh commands)
  -depth <n>        Extrusion depth
  -bevel <n>        Bevel depth (0 disables beveling)
  -format <name>    Export format: STL, OBJ, PLY, GLTF
  -scale <n>        Uniform export scale factor
  -output <dir>     Output directory
  -ascii            Write text-based STL/PLY instead of binary
  -config <path>    Config file path
  -debug            Enable debug logging

Examples:
  text3d generate -font fonts/Roboto.ttf -format stl "Hello"
  text3d generate -font fonts/Roboto.ttf -depth 8 -bevel 1 -format obj "Go"
  text3d preview -font fonts/Roboto.ttf "Hello"
  text3d info -font fonts/Roboto.ttf "Hello"`)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	logger.Sync()
	os.Exit(1)
}

// setup parses flags, loads configuration and initializes logging.
// It returns the config and the positional text argument.
func setup(args []string) (*config.Config, string) {
	config.ParseFlags(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return cfg, strings.Join(config.Args(), " ")
}

// buildMesh runs the full pipeline: font loading, text layout, outline
// extraction, extrusion and optimization. It returns the mesh and the
// parsed text.
func buildMesh(cfg *config.Config, input string) (*geometry.Mesh, string, error) {
	fontPath := config.FontPath()
	if fontPath == "" {
		return nil, "", fmt.Errorf("no font given, use -font <path>")
	}

	loader := text.NewFontLoader()
	if err := loader.LoadFont(fontPath, cfg.Text.FontSize); err != nil {
		return nil, "", err
	}

	proc := text.NewProcessor(loader, text.Config{
		CharacterSpacing: cfg.Text.CharacterSpacing,
		FallbackWidth:    cfg.Text.CharacterWidth,
		MaxTextLength:    cfg.Text.MaxTextLength,
	}, logger.Log)

	parsed, err := proc.ParseText(input)
	if err != nil {
		return nil, "", err
	}

	placements, err := proc.CalculateLayout(parsed, cfg.Text.CharacterSpacing)
	if err != nil {
		return nil, "", err
	}

	glyphs, err := proc.TextOutlines(parsed)
	if err != nil {
		return nil, "", err
	}

	var outlines [][]math.Vec2
	for _, pl := range placements {
		for _, contour := range glyphs[pl.Char] {
			placed := make([]math.Vec2, len(contour))
			for i, p := range contour {
				placed[i] = p.Add(pl.Position)
			}
			outlines = append(outlines, placed)
		}
	}

	gen := geometry.NewGenerator(geometry.Config{
		DefaultDepth:      cfg.Geometry.ExtrusionDepth,
		DefaultBevelDepth: cfg.Geometry.BevelDepth,
		BevelResolution:   cfg.Geometry.BevelResolution,
		MaxVertices:       cfg.Geometry.MaxVertices,
	}, logger.Log)

	mesh, err := gen.GenerateMesh(outlines, cfg.Geometry.ExtrusionDepth, cfg.Geometry.BevelDepth)
	if err != nil {
		return nil, "", err
	}
	return mesh, parsed, nil
}

func cmdGenerate(args []string) {
	cfg, input := setup(args)
	defer logger.Sync()

	mesh, parsed, err := buildMesh(cfg, input)
	if err != nil {
		fatalf("%v", err)
	}

	format, err := formats.ParseFormat(cfg.Export.Format)
	if err != nil {
		fatalf("%v", err)
	}

	supported := make([]formats.Format, 0, len(cfg.Export.Formats))
	for _, name := range cfg.Export.Formats {
		f, err := formats.ParseFormat(name)
		if err != nil {
			fatalf("%v", err)
		}
		supported = append(supported, f)
	}

	exporter, err := formats.NewExporter(formats.Config{
		OutputDir:    cfg.Export.OutputDir,
		DefaultScale: cfg.Export.Scale,
		Supported:    supported,
	}, logger.Log)
	if err != nil {
		fatalf("%v", err)
	}

	opts := formats.Options{
		STL: formats.STLOptions{ASCII: config.ASCII()},
		OBJ: formats.OBJOptions{Materials: true},
		PLY: formats.PLYOptions{ASCII: config.ASCII()},
	}
	path, err := exporter.ExportMesh(mesh, outputName(parsed), format, opts)
	if err != nil {
		fatalf("%v", err)
	}

	info := mesh.Info()
	fmt.Printf("Exported:  %s\n", path)
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Faces:     %d\n", len(mesh.Faces))
	fmt.Printf("Size:      %s\n", formatSize(info.Bounds.Size()))
	if fi, err := formats.GetExportInfo(path); err == nil {
		fmt.Printf("File:      %d bytes (%s)\n", fi.Size, fi.Format)
	}
}

func cmdPreview(args []string) {
	cfg, input := setup(args)
	defer logger.Sync()

	mesh, parsed, err := buildMesh(cfg, input)
	if err != nil {
		fatalf("%v", err)
	}

	opts := preview.DefaultOptions()
	if cfg.Preview.Width > 0 {
		opts.Width = cfg.Preview.Width
	}
	if cfg.Preview.Height > 0 {
		opts.Height = cfg.Preview.Height
	}

	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		fatalf("creating output directory: %v", err)
	}
	path := filepath.Join(cfg.Export.OutputDir, outputName(parsed)+"_preview.png")

	if err := preview.Render(mesh, path, opts); err != nil {
		fatalf("%v", err)
	}
	logger.Info("preview rendered", zap.String("path", path))
	fmt.Printf("Preview:   %s\n", path)
}

func cmdInfo(args []string) {
	cfg, input := setup(args)
	defer logger.Sync()

	mesh, parsed, err := buildMesh(cfg, input)
	if err != nil {
		fatalf("%v", err)
	}

	info := mesh.Info()
	fmt.Printf("Text:      %q\n", parsed)
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Faces:     %d (%d triangles, %d quads)\n",
		len(mesh.Faces), info.TriangleCount, info.QuadCount)
	fmt.Printf("Size:      %s\n", formatSize(info.Bounds.Size()))
	fmt.Printf("Center:    (%.2f, %.2f, %.2f)\n",
		info.Center.X, info.Center.Y, info.Center.Z)
}

func cmdFormats() {
	fmt.Println("Supported export formats:")
	for _, f := range formats.DefaultConfig().Supported {
		fmt.Printf("  %-5s (%s)\n", f, f.Ext())
	}
}

// outputName derives a filesystem-safe file stem from the input text.
func outputName(text string) string {
	var b strings.Builder
	b.WriteString("text_")
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func formatSize(s math.Vec3) string {
	return fmt.Sprintf("%.2f x %.2f x %.2f", s.X, s.Y, s.Z)
}
