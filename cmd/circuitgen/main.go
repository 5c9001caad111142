// Command circuitgen renders a diagram request file to a PNG wiring diagram.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/diagram"
	"circuit-diagram/internal/module"
	"circuit-diagram/internal/render"
	"circuit-diagram/internal/request"
	"circuit-diagram/internal/version"
)

func main() {
	reqPath := flag.String("request", "", "Path to diagram request (JSON)")
	outPath := flag.String("o", "diagram.png", "Output PNG path")
	assetsDir := flag.String("assets", "assets", "Directory holding the default board and module photos")
	dpi := flag.Float64("dpi", render.DefaultOptions().DPI, "Output DPI")
	list := flag.Bool("list", false, "List module types and board pins, then exit")
	planOnly := flag.Bool("plan", false, "Print the layout and connections as JSON instead of rendering")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *list {
		printCatalog()
		return
	}
	if *reqPath == "" {
		fmt.Println("Usage: circuitgen -request <file.json> [-o diagram.png] [-assets dir] [-dpi 200] [-plan]")
		os.Exit(1)
	}

	req, err := request.Load(*reqPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load request: %v\n", err)
		os.Exit(1)
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid request: %v\n", err)
		os.Exit(1)
	}

	in, err := req.Input(filepath.Dir(*reqPath), *assetsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *planOnly {
		plan, err := diagram.NewPlan(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode plan: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	opts := render.DefaultOptions()
	opts.DPI = *dpi
	png, err := diagram.Generate(in, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d components, %d bytes)\n", *outPath, len(in.Components), len(png))
}

func printCatalog() {
	fmt.Println("Module types:")
	for _, name := range module.Names() {
		mt, _ := module.Lookup(name)
		fmt.Printf("  %-12s pins %-24s photo %s\n", mt.Name, strings.Join(mt.Pins, ","), mt.Image)
	}

	for _, name := range board.List() {
		reg := board.Lookup(name)
		fmt.Printf("\n%s (power %s, ground %s):\n", reg.Name(), reg.PowerRail(), reg.GroundRail())
		fmt.Printf("  %-6s %-6s %s\n", "Pin", "Side", "Fraction")
		for _, p := range reg.Pins() {
			fmt.Printf("  %-6s %-6s %.2f\n", p.Name, p.Side, p.Fraction)
		}
	}
}
