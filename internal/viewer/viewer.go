// Package viewer shows a mesh in an SDL2 window with OpenGL. The mesh can be
// stepped through the coplanar resolver interactively.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Viewer owns the window, GL resources and the mesh being shown.
type Viewer struct {
	cfg      config.ViewerConfig
	resolver config.ResolverConfig
	name     string
	log      *zap.Logger

	win     *window
	program *program
	gpu     *gpuMesh
	camera  *orbitCamera

	mesh      *mesh.Mesh[uint32]
	wireframe bool
	steps     int

	pendingExport chan string
}

// New opens the window and uploads m. It must be called from the main
// goroutine.
func New(name string, m *mesh.Mesh[uint32], cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		cfg:       cfg.Viewer,
		resolver:  cfg.Resolver,
		name:      name,
		log:       log,
		camera:    newOrbitCamera(),
		mesh:      m,
		wireframe: cfg.Viewer.Wireframe,

		pendingExport: make(chan string, 1),
	}

	var err error
	v.win, err = newWindow(windowConfig{
		Title:  v.title(),
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	}, log)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		v.win.close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	w, h := v.win.size()
	gl.Viewport(0, 0, int32(w), int32(h))

	v.program, err = newProgram()
	if err != nil {
		v.win.close()
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	d := prepare(m)
	v.camera.fit(bounds(d.Positions))
	v.gpu = uploadMesh(d)
	return v, nil
}

// prepare snapshots m for drawing with per-face normals.
func prepare(m *mesh.Mesh[uint32]) *mesh.RenderData {
	return m.Clone().Duplicate().FlatNormals().RenderData()
}

// Run draws frames until the window is closed or Esc is pressed.
func (v *Viewer) Run() error {
	last := time.Now()
	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if quit := v.handleEvents(); quit {
			return nil
		}
		v.flushExport()
		v.camera.orbit(v.cfg.RotateSpeed * dt)
		v.render()
		v.win.swap()
	}
}

func (v *Viewer) handleEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				gl.Viewport(0, 0, e.Data1, e.Data2)
				v.log.Debug("viewport resized", zap.Int32("width", e.Data1), zap.Int32("height", e.Data2))
			}

		case *sdl.MouseWheelEvent:
			v.camera.zoom(float32(e.Y))

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_W:
				v.wireframe = !v.wireframe
			case sdl.SCANCODE_R:
				v.resolveStep()
			case sdl.SCANCODE_E:
				v.askExportPath()
			case sdl.SCANCODE_P:
				v.screenshot()
			}
		}
	}
	return false
}

// resolveStep runs the resolver with a budget of one rewrite and re-uploads
// the mesh.
func (v *Viewer) resolveStep() {
	opts := v.resolver.Options(v.log.Named("resolver"))
	opts.MaxChanges = 1

	res := v.mesh.CutCoplanarEdges(opts)
	v.steps += res.Changes
	v.log.Info("resolver step",
		zap.Int("changes", res.Changes),
		zap.Int("removed", res.Removed),
		zap.Bool("exhausted", res.Exhausted),
		zap.Int("triangles", v.mesh.TriangleCount()),
	)
	if res.Changes == 0 && res.Removed == 0 {
		return
	}

	v.gpu.delete()
	v.gpu = uploadMesh(prepare(v.mesh))
	v.win.setTitle(v.title())
}

func (v *Viewer) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	w, h := v.win.size()
	aspect := float32(w) / float32(max(h, 1))
	model := math.Identity()
	view := v.camera.view()
	proj := v.camera.projection(aspect)

	gl.UseProgram(v.program.id)
	gl.UniformMatrix4fv(v.program.model, 1, false, model.Ptr())
	gl.UniformMatrix4fv(v.program.view, 1, false, view.Ptr())
	gl.UniformMatrix4fv(v.program.projection, 1, false, proj.Ptr())
	gl.Uniform3f(v.program.lightDir, -0.4, -1, -0.6)
	gl.Uniform3f(v.program.color, 0.35, 0.6, 0.85)

	if v.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Uniform1i(v.program.wireframe, 1)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		gl.Uniform1i(v.program.wireframe, 0)
	}
	v.gpu.draw()
}

func (v *Viewer) title() string {
	return fmt.Sprintf("meshview: %s (%d triangles, %d resolver steps)", v.name, v.mesh.TriangleCount(), v.steps)
}

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	if v.gpu != nil {
		v.gpu.delete()
	}
	if v.program != nil {
		v.program.delete()
	}
	v.win.close()
}
