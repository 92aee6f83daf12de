package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagFont    = flag.String("font", "", "Path to TTF/OTF font file")
	flagDepth   = flag.Float64("depth", 0, "Extrusion depth")
	flagBevel   = flag.Float64("bevel", -1, "Bevel depth (0 disables beveling)")
	flagFormat  = flag.String("format", "", "Export format (STL, OBJ, PLY, GLTF)")
	flagScale   = flag.Float64("scale", 0, "Uniform export scale factor")
	flagOutput  = flag.String("output", "", "Output directory")
	flagASCII   = flag.Bool("ascii", false, "Write text-based STL/PLY instead of binary")
	flagLogFile = flag.String("logfile", "", "Log file path")
)

// ParseFlags parses the given command-line arguments, typically the
// arguments following the subcommand name.
func ParseFlags(args []string) {
	flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// FontPath returns the explicit font path if provided via --font flag.
func FontPath() string {
	return *flagFont
}

// ASCII reports whether text-based output was requested via --ascii.
func ASCII() bool {
	return *flagASCII
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDepth > 0 {
		cfg.Geometry.ExtrusionDepth = *flagDepth
	}
	if *flagBevel >= 0 {
		cfg.Geometry.BevelDepth = *flagBevel
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagScale > 0 {
		cfg.Export.Scale = *flagScale
	}
	if *flagOutput != "" {
		cfg.Export.OutputDir = *flagOutput
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
