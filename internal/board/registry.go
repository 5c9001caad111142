// Package board provides board pin registries: which named pin sits on which
// edge of the board image and how far up that edge it is.
package board

import (
	"encoding/json"
	"fmt"

	"circuit-diagram/pkg/geometry"
)

// Side specifies which vertical edge of the board image a pin sits on.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("unknown board side %q", str)
	}
	return nil
}

// PinSpec places one named board pin.
type PinSpec struct {
	Name     string  `json:"name"`
	Side     Side    `json:"side"`
	Fraction float64 `json:"fraction"` // 0 = bottom edge of the image, 1 = top edge
}

// Registry is an immutable table of board pins plus the designated rails.
// It is safe for concurrent use.
type Registry struct {
	name   string
	power  string
	ground string
	pins   []PinSpec
	byName map[string]PinSpec
}

// NewRegistry validates the pin table and builds a registry from it.
// The power and ground rails must name pins in the table.
func NewRegistry(name, powerRail, groundRail string, pins []PinSpec) (*Registry, error) {
	if name == "" {
		return nil, fmt.Errorf("board name is required")
	}
	r := &Registry{
		name:   name,
		power:  powerRail,
		ground: groundRail,
		pins:   make([]PinSpec, 0, len(pins)),
		byName: make(map[string]PinSpec, len(pins)),
	}
	for _, p := range pins {
		if p.Name == "" {
			return nil, fmt.Errorf("board %s: pin name is required", name)
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("board %s: duplicate pin %q", name, p.Name)
		}
		if p.Side != SideLeft && p.Side != SideRight {
			return nil, fmt.Errorf("board %s: pin %s has invalid side %d", name, p.Name, p.Side)
		}
		if p.Fraction < 0 || p.Fraction > 1 {
			return nil, fmt.Errorf("board %s: pin %s fraction %.3f outside [0,1]", name, p.Name, p.Fraction)
		}
		r.pins = append(r.pins, p)
		r.byName[p.Name] = p
	}
	if _, ok := r.byName[powerRail]; !ok {
		return nil, fmt.Errorf("board %s: power rail %q is not a pin", name, powerRail)
	}
	if _, ok := r.byName[groundRail]; !ok {
		return nil, fmt.Errorf("board %s: ground rail %q is not a pin", name, groundRail)
	}
	return r, nil
}

// Name returns the board's display name.
func (r *Registry) Name() string {
	return r.name
}

// PowerRail returns the pin every module VCC is wired to.
func (r *Registry) PowerRail() string {
	return r.power
}

// GroundRail returns the pin every module GND is wired to.
func (r *Registry) GroundRail() string {
	return r.ground
}

// Len returns the number of pins.
func (r *Registry) Len() int {
	return len(r.pins)
}

// Names returns pin names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.pins))
	for i, p := range r.pins {
		names[i] = p.Name
	}
	return names
}

// Pins returns a copy of the pin table in declaration order.
func (r *Registry) Pins() []PinSpec {
	return append([]PinSpec(nil), r.pins...)
}

// Lookup returns the PinSpec for a pin name. Matching is exact and case-sensitive.
func (r *Registry) Lookup(name string) (PinSpec, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Resolve returns the canvas coordinate of a pin for a board drawn in box.
// Unknown names return ok=false; callers skip the connection.
func (r *Registry) Resolve(name string, box geometry.Box) (geometry.Point2D, bool) {
	p, ok := r.byName[name]
	if !ok {
		return geometry.Point2D{}, false
	}
	return p.locate(box), true
}

// ResolveAll returns the coordinate of every pin for a board drawn in box.
func (r *Registry) ResolveAll(box geometry.Box) map[string]geometry.Point2D {
	coords := make(map[string]geometry.Point2D, len(r.pins))
	for _, p := range r.pins {
		coords[p.Name] = p.locate(box)
	}
	return coords
}

func (p PinSpec) locate(box geometry.Box) geometry.Point2D {
	fx := 0.0
	if p.Side == SideRight {
		fx = 1
	}
	return box.Lerp(fx, p.Fraction)
}
