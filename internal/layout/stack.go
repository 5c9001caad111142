package layout

import (
	"fmt"

	"circuit-diagram/internal/module"
	"circuit-diagram/pkg/geometry"
)

// Spacing is the vertical gap between stacked modules.
const Spacing = 6.0

// PinNudge moves each module pin anchor slightly inside the image corner.
var PinNudge = geometry.Point2D{X: 2, Y: 2}

// ModuleInput is one module to stack: its type and native image size.
type ModuleInput struct {
	Type   module.Type
	Width  int
	Height int
}

// ResolvedPin is a module pin with its canvas coordinate.
type ResolvedPin struct {
	Owner string           `json:"owner"`
	Pin   string           `json:"pin"`
	At    geometry.Point2D `json:"at"`
}

// Placement is where a module was put and where its pins ended up.
type Placement struct {
	ID     string        `json:"id"` // "<type>#<index>", unique within one diagram
	Module module.Type   `json:"module"`
	Box    geometry.Box  `json:"box"`
	Pins   []ResolvedPin `json:"pins"` // same order as Module.Pins
}

// Pin returns the coordinate of a pin by name.
func (p *Placement) Pin(name string) (geometry.Point2D, bool) {
	for _, rp := range p.Pins {
		if rp.Pin == name {
			return rp.At, true
		}
	}
	return geometry.Point2D{}, false
}

// LayoutModules stacks modules top to bottom in zone, in input order.
// Modules that run past the bottom of the canvas are kept as they are.
// boardPins supplies coordinates for pins anchored on the board.
func LayoutModules(mods []ModuleInput, zone geometry.Box, boardPins map[string]geometry.Point2D) ([]Placement, error) {
	width := zone.Width() - BoardInset
	cx := zone.Center().X
	yTop := zone.Y1

	placements := make([]Placement, 0, len(mods))
	for i, m := range mods {
		box, err := FitWidth(m.Width, m.Height, cx, yTop, width)
		if err != nil {
			return nil, fmt.Errorf("module %d (%s): %w", i+1, m.Type.Name, err)
		}

		p := Placement{
			ID:     fmt.Sprintf("%s#%d", m.Type.Name, i),
			Module: m.Type,
			Box:    box,
		}
		p.Pins = placePins(p.ID, m.Type, box, boardPins)
		placements = append(placements, p)

		yTop = box.Y0 - Spacing
	}
	return placements, nil
}

// placePins spreads pins evenly along the left edge of box.
func placePins(owner string, t module.Type, box geometry.Box, boardPins map[string]geometry.Point2D) []ResolvedPin {
	n := len(t.Pins)
	pins := make([]ResolvedPin, n)
	for i, name := range t.Pins {
		at := geometry.Point2D{
			X: box.X0,
			Y: box.Y0 + float64(i+1)/float64(n+1)*box.Height(),
		}
		if boardPin, ok := module.Anchor(t.Name, name); ok {
			if bp, ok := boardPins[boardPin]; ok {
				at = bp
			}
		}
		pins[i] = ResolvedPin{Owner: owner, Pin: name, At: at.Add(PinNudge)}
	}
	return pins
}
