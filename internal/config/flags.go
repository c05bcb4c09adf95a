package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log", "", "Write logs to this file as well")
	flagTolerance  = flag.Float64("tol", 0, "Resolver tolerance")
	flagMaxChanges = flag.Int("max", -1, "Resolver change budget (0 = unbounded)")
	flagNoResolve  = flag.Bool("no-resolve", false, "Skip the coplanar resolver")
	flagOptimize   = flag.Bool("optimize", false, "Run the buffer optimizer")
	flagScene      = flag.String("scene", "", "Scene to build")
	flagWireframe  = flag.Bool("wireframe", false, "Start the viewer in wireframe mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagTolerance > 0 {
		cfg.Resolver.Tolerance = float32(*flagTolerance)
	}
	if *flagMaxChanges >= 0 {
		cfg.Resolver.MaxChanges = *flagMaxChanges
	}
	if *flagNoResolve {
		cfg.Resolver.Enabled = false
	}
	if *flagOptimize {
		cfg.Optimizer.Enabled = true
	}
	if *flagScene != "" {
		cfg.Viewer.Scene = *flagScene
	}
	if *flagWireframe {
		cfg.Viewer.Wireframe = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
