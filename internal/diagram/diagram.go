// Package diagram is the entry point for producing a wiring diagram: it
// lays out the board and modules, resolves connections and renders the PNG.
package diagram

import (
	"errors"
	"fmt"
	"image"
	"log"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/canvas"
	"circuit-diagram/internal/layout"
	"circuit-diagram/internal/module"
	"circuit-diagram/internal/render"
	"circuit-diagram/internal/wiring"
	"circuit-diagram/pkg/geometry"
)

var (
	// ErrMissingAsset is returned when the board or a module has no image.
	ErrMissingAsset = errors.New("missing asset")

	// ErrInvalidImage is returned for images with no usable dimensions.
	ErrInvalidImage = layout.ErrInvalidImage
)

// Component is one requested peripheral module.
type Component struct {
	Type   string            // catalog name, e.g. "LDR"
	Image  image.Image       // module photo
	PinMap map[string]string // module signal pin -> board pin
}

// Input describes one diagram.
type Input struct {
	Board      image.Image
	BoardTitle string // defaults to the board name
	Components []Component

	// Board pin registry; nil means the Arduino UNO.
	Registry *board.Registry
}

// Plan is the geometry of a diagram before it is drawn.
type Plan struct {
	BoardName   string                      `json:"board"`
	BoardBox    geometry.Box                `json:"board_box"`
	BoardPins   map[string]geometry.Point2D `json:"board_pins"`
	Modules     []layout.Placement          `json:"modules"`
	Connections []wiring.Connection         `json:"connections"`
	Skipped     []string                    `json:"skipped,omitempty"` // unknown component types

	images []image.Image // module images, aligned with Modules
}

// NewPlan lays out the input and resolves its connections.
// Components of unknown type are left out and listed in Skipped.
func NewPlan(in Input) (*Plan, error) {
	if in.Board == nil {
		return nil, fmt.Errorf("%w: board image", ErrMissingAsset)
	}
	reg := in.Registry
	if reg == nil {
		reg = board.Uno()
	}

	bs := in.Board.Bounds().Size()
	boardBox, err := layout.LayoutBoard(bs.X, bs.Y)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		BoardName: reg.Name(),
		BoardBox:  boardBox,
		BoardPins: reg.ResolveAll(boardBox),
	}

	var (
		mods    []layout.ModuleInput
		pinMaps []map[string]string
	)
	for i, c := range in.Components {
		mt, ok := module.Lookup(c.Type)
		if !ok {
			log.Printf("diagram: skipping component %d: unknown module type %q", i+1, c.Type)
			plan.Skipped = append(plan.Skipped, c.Type)
			continue
		}
		if c.Image == nil {
			return nil, fmt.Errorf("%w: image for component %d (%s)", ErrMissingAsset, i+1, c.Type)
		}
		size := c.Image.Bounds().Size()
		mods = append(mods, layout.ModuleInput{Type: mt, Width: size.X, Height: size.Y})
		pinMaps = append(pinMaps, c.PinMap)
		plan.images = append(plan.images, c.Image)
	}

	plan.Modules, err = layout.LayoutModules(mods, canvas.RightZone(), plan.BoardPins)
	if err != nil {
		return nil, err
	}

	resolver := wiring.NewResolver(reg)
	for i, p := range plan.Modules {
		plan.Connections = append(plan.Connections, resolver.Resolve(p, pinMaps[i], plan.BoardPins)...)
	}
	return plan, nil
}

// Scene converts the plan into drawable items.
func (p *Plan) Scene(boardImage image.Image, boardTitle string) render.Scene {
	if boardTitle == "" {
		boardTitle = p.BoardName
	}
	scene := render.Scene{
		Board:       render.Item{Image: boardImage, Box: p.BoardBox, Title: boardTitle},
		Connections: p.Connections,
	}
	for i, m := range p.Modules {
		scene.Modules = append(scene.Modules, render.Item{
			Image: p.images[i],
			Box:   m.Box,
			Title: m.Module.Name,
		})
	}
	return scene
}

// Generate renders the diagram described by in and returns PNG bytes.
func Generate(in Input, opts render.Options) ([]byte, error) {
	plan, err := NewPlan(in)
	if err != nil {
		return nil, err
	}

	r, err := render.New(opts)
	if err != nil {
		return nil, err
	}
	out, err := r.Render(plan.Scene(in.Board, in.BoardTitle))
	if err != nil {
		return nil, fmt.Errorf("render diagram: %w", err)
	}
	return out, nil
}
