// meshtool builds the demo scenes and inspects them from the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/internal/logger"
	"github.com/Faultbox/procmesh/internal/scene"
	"github.com/Faultbox/procmesh/pkg/mesh"
	"github.com/Faultbox/procmesh/pkg/meshopt"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command, rest := args[0], args[1:]
	switch command {
	case "scenes", "ls":
		cmdScenes()
	case "stats":
		cmdStats(cfg, rest)
	case "resolve":
		cmdResolve(cfg, rest)
	case "analyze":
		cmdAnalyze(cfg, rest)
	case "obj":
		cmdOBJ(cfg, rest)
	case "config":
		cmdConfig(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - procedural mesh utility

Usage:
  meshtool [global flags] <command> [options]

Commands:
  scenes                          List the available scenes
  stats <scene>                   Show buffer sizes after the configured pipeline
  resolve <scene> [-max N] [-tol t]
                                  Run the coplanar resolver and report the rewrites
  analyze <scene> [-optimize]     Estimate vertex cache, fetch and overdraw cost
  obj <scene> -o file.obj         Write the scene as Wavefront OBJ
  config [-save]                  Print the effective config as YAML

Global flags:
  -config, -debug, -log, -tol, -max, -no-resolve, -optimize

Examples:
  meshtool scenes
  meshtool resolve poke -max 1
  meshtool -optimize analyze sdf-box
  meshtool -no-resolve obj star-circle -o star.obj`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdScenes() {
	for _, name := range scene.Names() {
		fmt.Printf("  %-12s %s\n", name, scene.Describe(name))
	}
}

func cmdStats(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool stats <scene>")
		os.Exit(1)
	}

	m, rep, err := scene.Prepare(args[0], cfg, logger.Component("pipeline"))
	if err != nil {
		fail(err)
	}

	d := m.RenderData()
	width := "uint16"
	if d.Format == mesh.IndexUint32 {
		width = "uint32"
	}
	_, hasUV := m.UV()
	_, hasNormals := m.Normals()

	fmt.Printf("Scene:     %s\n", rep.Scene)
	fmt.Printf("Topology:  %s\n", m.Topology())
	fmt.Printf("Vertices:  %d\n", m.Vertices().Len())
	fmt.Printf("Triangles: %d (built %d)\n", m.TriangleCount(), rep.Built)
	fmt.Printf("Indices:   %d x %s\n", d.IndexCount(), width)
	fmt.Printf("UV:        %t\n", hasUV)
	fmt.Printf("Normals:   %t\n", hasNormals)
	if rep.Resolved {
		printResolve(rep.Resolve)
	}
	if rep.Optimized {
		fmt.Println("Optimized: yes")
	}
}

func cmdResolve(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	maxChanges := fs.Int("max", cfg.Resolver.MaxChanges, "Change budget (0 = unbounded)")
	tol := fs.Float64("tol", float64(cfg.Resolver.Tolerance), "Tolerance")
	out := fs.String("o", "", "Also write the result as OBJ")
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool resolve <scene> [-max N] [-tol t] [-o file.obj]")
		os.Exit(1)
	}
	name := args[0]
	fs.Parse(args[1:])

	m, err := scene.Build[uint32](name, cfg.Tessellation)
	if err != nil {
		fail(err)
	}
	before := m.TriangleCount()

	opts := cfg.Resolver.Options(logger.Component("resolver"))
	opts.MaxChanges = *maxChanges
	opts.Tolerance = float32(*tol)
	res := m.CutCoplanarEdges(opts)

	fmt.Printf("Scene:     %s\n", name)
	fmt.Printf("Triangles: %d -> %d\n", before, m.TriangleCount())
	fmt.Printf("Vertices:  %d\n", m.Vertices().Len())
	printResolve(res)

	if *out != "" {
		if err := writeOBJ(m, *out); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %s\n", *out)
	}
}

func printResolve(res mesh.ResolveResult) {
	fmt.Printf("Resolver:  %d changes, %d removed", res.Changes, res.Removed)
	if res.Exhausted {
		fmt.Print(" (budget exhausted)")
	}
	fmt.Println()
}

func cmdAnalyze(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	optimize := fs.Bool("optimize", false, "Compare against the optimized buffers")
	grid := fs.Int("grid", meshopt.DefaultAnalyzeOptions().Grid, "Overdraw raster size")
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool analyze <scene> [-optimize] [-grid N]")
		os.Exit(1)
	}
	name := args[0]
	fs.Parse(args[1:])

	m, _, err := scene.Prepare(name, cfg, logger.Component("pipeline"))
	if err != nil {
		fail(err)
	}

	opts := meshopt.DefaultAnalyzeOptions()
	opts.Grid = *grid
	before := meshopt.Analyze(m, opts)

	fmt.Printf("Scene: %s\n\n", name)
	if !*optimize {
		printAnalysis(before)
		return
	}

	meshopt.Optimize(m, cfg.Optimizer.Settings())
	after := meshopt.Analyze(m, opts)
	fmt.Println("Before:")
	printAnalysis(before)
	fmt.Println("\nAfter:")
	printAnalysis(after)
}

func printAnalysis(a meshopt.Analysis) {
	fmt.Printf("  vertices            %d\n", a.VertexCount)
	fmt.Printf("  indices             %d\n", a.IndexCount)
	fmt.Printf("  vertices transformed %d (ACMR %.3f, ATVR %.3f)\n", a.VerticesTransformed, a.ACMR, a.ATVR)
	fmt.Printf("  warps executed      %d\n", a.WarpsExecuted)
	fmt.Printf("  bytes fetched       %d (overfetch %.3f)\n", a.BytesFetched, a.Overfetch)
	fmt.Printf("  pixels covered      %d, shaded %d (overdraw %.3f)\n", a.PixelsCovered, a.PixelsShaded, a.Overdraw)
}

func cmdOBJ(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	out := fs.String("o", "", "Output file (- for stdout)")
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool obj <scene> -o file.obj")
		os.Exit(1)
	}
	name := args[0]
	fs.Parse(args[1:])
	if *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshtool obj <scene> -o file.obj")
		os.Exit(1)
	}

	m, rep, err := scene.Prepare(name, cfg, logger.Component("pipeline"))
	if err != nil {
		fail(err)
	}
	if err := writeOBJ(m, *out); err != nil {
		fail(err)
	}
	logger.Log.Info("obj written",
		zap.String("scene", name),
		zap.String("path", *out),
		zap.Int("triangles", m.TriangleCount()),
		zap.Bool("resolved", rep.Resolved),
	)
}

func writeOBJ(m *mesh.Mesh[uint32], path string) error {
	if path == "-" {
		return m.WriteOBJ(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func cmdConfig(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	fs.Parse(args)

	data, err := cfg.YAML()
	if err != nil {
		fail(err)
	}
	fmt.Print(string(data))

	if *save {
		if err := cfg.Save(); err != nil {
			fail(err)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", config.ConfigDir())
	}
}
