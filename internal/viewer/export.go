package viewer

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"
)

// askExportPath shows a native save dialog off the main thread. The chosen
// path is queued and written by the render loop.
func (v *Viewer) askExportPath() {
	go func() {
		path, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Export mesh").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case v.pendingExport <- path:
		default:
			v.log.Warn("export already pending", zap.String("path", path))
		}
	}()
}

// flushExport writes the mesh if a path was chosen since the last frame.
func (v *Viewer) flushExport() {
	select {
	case path := <-v.pendingExport:
		if err := v.exportOBJ(path); err != nil {
			v.log.Error("export failed", zap.String("path", path), zap.Error(err))
			return
		}
		v.log.Info("mesh exported", zap.String("path", path), zap.Int("triangles", v.mesh.TriangleCount()))
	default:
	}
}

func (v *Viewer) exportOBJ(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := v.mesh.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
