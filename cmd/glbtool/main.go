// glbtool is a CLI utility for inspecting binary glTF (.glb) files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/morphview/pkg/geometry"
	"github.com/Faultbox/morphview/pkg/glb"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "meshes", "ls":
		cmdMeshes(args)
	case "verts":
		cmdVerts(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`glbtool - binary glTF inspection utility

Usage:
  glbtool <command> [options]

Commands:
  info <file.glb>              Show container information
  meshes <file.glb>            List meshes and their primitives
  verts <file.glb> [-n N]      Dump de-indexed vertex positions

Examples:
  glbtool info model.glb
  glbtool meshes model.glb
  glbtool verts model.glb -n 10`)
}

func openContainer(path string) *glb.Container {
	c, err := glb.ParseContainerFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return c
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: glbtool info <file.glb>")
		os.Exit(1)
	}

	c := openContainer(args[0])

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Version:     %d\n", c.Version)
	fmt.Printf("Binary:      %d bytes\n", len(c.Bin))
	fmt.Printf("Meshes:      %d\n", len(c.Doc.Meshes))
	fmt.Printf("Accessors:   %d\n", len(c.Doc.Accessors))
	fmt.Printf("BufferViews: %d\n", len(c.Doc.BufferViews))
	fmt.Printf("Buffers:     %d\n", len(c.Doc.Buffers))
}

func cmdMeshes(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: glbtool meshes <file.glb>")
		os.Exit(1)
	}

	c := openContainer(args[0])
	prims, err := glb.ExtractMeshes(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, p := range prims {
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		kind := "non-indexed"
		if p.Indices != nil {
			kind = fmt.Sprintf("%d indices", len(p.Indices))
		}
		fmt.Printf("%3d  %-24s %6d vertices  %s\n", i, name, p.VertexCount(), kind)
	}
	fmt.Fprintf(os.Stderr, "\n(%d primitives)\n", len(prims))
}

func cmdVerts(args []string) {
	fs := flag.NewFlagSet("verts", flag.ExitOnError)
	limit := fs.Int("n", 20, "Limit output to N vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: glbtool verts <file.glb> [-n N]")
		os.Exit(1)
	}

	c := openContainer(fs.Arg(0))
	prims, err := glb.ExtractMeshes(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(prims) == 0 {
		fmt.Fprintln(os.Stderr, "No meshes in file")
		os.Exit(1)
	}

	var positions []float32
	for i := range prims {
		positions = append(positions, prims[i].Deindexed()...)
	}

	b := geometry.ComputeBounds(positions)
	fmt.Printf("Vertices: %d (de-indexed)\n", len(positions)/3)
	fmt.Printf("Bounds:   min(%.3f, %.3f, %.3f) max(%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Println()

	count := len(positions) / 3
	if *limit > 0 && count > *limit {
		count = *limit
	}
	for v := 0; v < count; v++ {
		fmt.Printf("%6d  %10.4f %10.4f %10.4f\n",
			v, positions[v*3], positions[v*3+1], positions[v*3+2])
	}
	if count < len(positions)/3 {
		fmt.Fprintf(os.Stderr, "\n(showing first %d of %d, use -n 0 for all)\n", count, len(positions)/3)
	}
}
