// Package module holds the catalog of peripheral module types and the
// per-type pin overrides used when laying them out.
package module

// Pins wired to the board rails regardless of user input.
const (
	PowerPin  = "VCC"
	GroundPin = "GND"
)

// MaxPerDiagram is the most modules the component form accepts.
const MaxPerDiagram = 5

// Type describes a peripheral module.
type Type struct {
	Name  string   `json:"name"`
	Image string   `json:"image"` // default photo file name
	Pins  []string `json:"pins"`  // bottom-to-top order along the module's left edge
}

// SignalPins returns the pins that need a user-chosen board pin.
func (t Type) SignalPins() []string {
	var out []string
	for _, p := range t.Pins {
		if !IsRailPin(p) {
			out = append(out, p)
		}
	}
	return out
}

// IsRailPin reports whether a module pin is always wired to a board rail.
func IsRailPin(pin string) bool {
	return pin == PowerPin || pin == GroundPin
}

var catalog = map[string]Type{
	"LDR": {
		Name:  "LDR",
		Image: "LDR2.png",
		Pins:  []string{PowerPin, GroundPin, "A0", "D0"},
	},
	"Ultrasonic": {
		Name:  "Ultrasonic",
		Image: "Ultrasonic3.png",
		Pins:  []string{PowerPin, GroundPin, "TRIG", "ECHO"},
	},
}

var order = []string{"LDR", "Ultrasonic"}

// Lookup returns a module type by name. The returned value does not share
// memory with the catalog.
func Lookup(name string) (Type, bool) {
	t, ok := catalog[name]
	if !ok {
		return Type{}, false
	}
	t.Pins = append([]string(nil), t.Pins...)
	return t, true
}

// Names returns the catalog's module names in display order.
func Names() []string {
	return append([]string(nil), order...)
}
