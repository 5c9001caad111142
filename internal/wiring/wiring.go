// Package wiring turns placed modules and user pin choices into the list of
// connections to draw.
package wiring

import (
	"encoding/json"
	"fmt"
	"image/color"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/layout"
	"circuit-diagram/internal/module"
	"circuit-diagram/pkg/colorutil"
	"circuit-diagram/pkg/geometry"
)

// Color is the role-based color of a connection.
type Color int

const (
	ColorSignal Color = iota
	ColorPower
	ColorGround
	ColorTrigger
	ColorEcho
)

func (c Color) String() string {
	switch c {
	case ColorSignal:
		return "blue"
	case ColorPower:
		return "red"
	case ColorGround:
		return "green"
	case ColorTrigger:
		return "orange"
	case ColorEcho:
		return "purple"
	default:
		return "unknown"
	}
}

// RGBA returns the drawing color.
func (c Color) RGBA() color.RGBA {
	rgba, ok := colorutil.ByName(c.String())
	if !ok {
		return colorutil.Blue
	}
	return rgba
}

// MarshalJSON implements json.Marshaler.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Signal pins with their own color; everything else is ColorSignal.
var signalColors = map[string]Color{
	"TRIG": ColorTrigger,
	"ECHO": ColorEcho,
}

// SignalColor returns the color for a non-rail module pin.
func SignalColor(pin string) Color {
	if c, ok := signalColors[pin]; ok {
		return c
	}
	return ColorSignal
}

// Connection is one wire from a module pin to a board pin.
type Connection struct {
	Module   string           `json:"module"`
	Pin      string           `json:"pin"`
	BoardPin string           `json:"board_pin"`
	From     geometry.Point2D `json:"from"`
	To       geometry.Point2D `json:"to"`
	Label    string           `json:"label"`
	Color    Color            `json:"color"`
}

// Resolver wires module pins to a particular board.
type Resolver struct {
	power  string
	ground string
}

// NewResolver returns a resolver that uses the board's rails.
func NewResolver(reg *board.Registry) *Resolver {
	return &Resolver{power: reg.PowerRail(), ground: reg.GroundRail()}
}

// Resolve returns the connections for one placed module, in pin order.
// VCC and GND always go to the rails. Other pins are wired only when
// pinMap names a board pin that exists in boardPins; otherwise they are
// left out.
func (r *Resolver) Resolve(p layout.Placement, pinMap map[string]string, boardPins map[string]geometry.Point2D) []Connection {
	name := p.Module.Name
	var conns []Connection
	for _, rp := range p.Pins {
		var (
			target string
			label  string
			col    Color
		)
		switch rp.Pin {
		case module.PowerPin:
			target, col = r.power, ColorPower
			label = fmt.Sprintf("%s VCC → %s", name, r.power)
		case module.GroundPin:
			target, col = r.ground, ColorGround
			label = fmt.Sprintf("%s GND → GND", name)
		default:
			boardPin, ok := pinMap[rp.Pin]
			if !ok {
				continue
			}
			target, col = boardPin, SignalColor(rp.Pin)
			label = fmt.Sprintf("%s %s → %s", name, rp.Pin, boardPin)
		}

		to, ok := boardPins[target]
		if !ok {
			continue
		}
		conns = append(conns, Connection{
			Module:   name,
			Pin:      rp.Pin,
			BoardPin: target,
			From:     rp.At,
			To:       to,
			Label:    label,
			Color:    col,
		})
	}
	return conns
}

// ResolveConnections wires one placed module to the Arduino UNO rails.
func ResolveConnections(p layout.Placement, pinMap map[string]string, boardPins map[string]geometry.Point2D) []Connection {
	return unoResolver.Resolve(p, pinMap, boardPins)
}

var unoResolver = NewResolver(board.Uno())
