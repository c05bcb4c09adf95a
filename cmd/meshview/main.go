// meshview shows a demo scene in an OpenGL window.
//
//	Esc    quit
//	W      toggle wireframe
//	R      run one resolver step
//	E      export OBJ
//	P      screenshot
//	wheel  zoom
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/internal/logger"
	"github.com/Faultbox/procmesh/internal/scene"
	"github.com/Faultbox/procmesh/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// A positional argument picks the scene, like -scene.
	if args := config.Args(); len(args) > 0 {
		cfg.Viewer.Scene = args[0]
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("=== procmesh viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	m, rep, err := scene.Prepare(cfg.Viewer.Scene, cfg, logger.Component("pipeline"))
	if err != nil {
		logger.Log.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}
	logger.Log.Info("scene ready",
		zap.String("scene", rep.Scene),
		zap.Int("triangles", m.TriangleCount()),
		zap.Bool("resolved", rep.Resolved),
		zap.Int("changes", rep.Resolve.Changes),
	)

	v, err := viewer.New(cfg.Viewer.Scene, m, cfg, logger.Component("viewer"))
	if err != nil {
		logger.Log.Error("failed to open viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Log.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Log.Info("viewer closed normally")
}
