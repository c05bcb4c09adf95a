package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/pkg/mesh"
	"github.com/Faultbox/procmesh/pkg/meshopt"
)

// Report summarizes what Prepare did to a scene.
type Report struct {
	Scene     string
	Built     int // triangles straight out of Build
	Resolved  bool
	Resolve   mesh.ResolveResult
	Optimized bool
}

// Prepare builds the named scene and runs the resolver and optimizer when
// their config sections enable them.
func Prepare(name string, cfg *config.Config, log *zap.Logger) (*mesh.Mesh[uint32], Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rep := Report{Scene: name}

	m, err := Build[uint32](name, cfg.Tessellation)
	if err != nil {
		return nil, rep, err
	}
	rep.Built = m.TriangleCount()
	log.Debug("scene built",
		zap.String("scene", name),
		zap.Int("vertices", m.Vertices().Len()),
		zap.Int("triangles", rep.Built),
	)

	if cfg.Resolver.Enabled {
		rep.Resolve = m.CutCoplanarEdges(cfg.Resolver.Options(log.Named("resolver")))
		rep.Resolved = true
		log.Debug("scene resolved",
			zap.Int("changes", rep.Resolve.Changes),
			zap.Int("removed", rep.Resolve.Removed),
			zap.Bool("exhausted", rep.Resolve.Exhausted),
		)
		if rep.Resolve.Exhausted {
			log.Warn("resolver budget exhausted, overlap may remain", zap.Int("max_changes", cfg.Resolver.MaxChanges))
		}
	}

	if cfg.Optimizer.Enabled {
		meshopt.Optimize(m, cfg.Optimizer.Settings())
		rep.Optimized = true
	}

	if err := m.CheckIndices(); err != nil {
		return nil, rep, fmt.Errorf("scene %s: %w", name, err)
	}
	return m, rep, nil
}
