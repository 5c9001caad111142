package board

import "sort"

// UnoName is the display name of the built-in Arduino UNO board.
const UnoName = "Arduino UNO"

// Fractions are measured from the bottom of the board photo: the header
// strips run along the long edges with the digital pins on the right.
var unoPins = []PinSpec{
	{Name: "D13", Side: SideRight, Fraction: 0.47},
	{Name: "D12", Side: SideRight, Fraction: 0.51},
	{Name: "D11", Side: SideRight, Fraction: 0.54},
	{Name: "D10", Side: SideRight, Fraction: 0.57},
	{Name: "D9", Side: SideRight, Fraction: 0.61},
	{Name: "D8", Side: SideRight, Fraction: 0.64},
	{Name: "D7", Side: SideRight, Fraction: 0.70},
	{Name: "D6", Side: SideRight, Fraction: 0.73},
	{Name: "D5", Side: SideRight, Fraction: 0.76},
	{Name: "D4", Side: SideRight, Fraction: 0.79},
	{Name: "D3", Side: SideRight, Fraction: 0.83},
	{Name: "D2", Side: SideRight, Fraction: 0.86},
	{Name: "TX", Side: SideRight, Fraction: 0.90},
	{Name: "RX", Side: SideRight, Fraction: 0.93},
	{Name: "AREF", Side: SideRight, Fraction: 0.41},
	{Name: "GND_R", Side: SideRight, Fraction: 0.44},

	{Name: "IOREF", Side: SideLeft, Fraction: 0.49},
	{Name: "RESET", Side: SideLeft, Fraction: 0.53},
	{Name: "3.3V", Side: SideLeft, Fraction: 0.56},
	{Name: "5V", Side: SideLeft, Fraction: 0.59},
	{Name: "GND1", Side: SideLeft, Fraction: 0.63},
	{Name: "GND2", Side: SideLeft, Fraction: 0.66},
	{Name: "VIN", Side: SideLeft, Fraction: 0.69},
	{Name: "A0", Side: SideLeft, Fraction: 0.76},
	{Name: "A1", Side: SideLeft, Fraction: 0.79},
	{Name: "A2", Side: SideLeft, Fraction: 0.83},
	{Name: "A3", Side: SideLeft, Fraction: 0.86},
	{Name: "A4", Side: SideLeft, Fraction: 0.89},
	{Name: "A5", Side: SideLeft, Fraction: 0.92},
}

// UnoImage is the default board photo file name.
const UnoImage = "Arduino UNO2.png"

var uno = mustRegistry(UnoName, "5V", "GND1", unoPins)

// Uno returns the built-in Arduino UNO registry.
func Uno() *Registry {
	return uno
}

// Known boards, keyed by name. Built once; there is no way to add to it.
var known = map[string]*Registry{
	UnoName: uno,
}

// Lookup returns a built-in board by name.
func Lookup(name string) *Registry {
	return known[name]
}

// List returns all built-in board names.
func List() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegistry(name, power, ground string, pins []PinSpec) *Registry {
	r, err := NewRegistry(name, power, ground, pins)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultImages = map[string]string{
	UnoName: UnoImage,
}

// DefaultImage returns the photo file name shipped for a built-in board,
// or "" if there is none.
func DefaultImage(name string) string {
	return defaultImages[name]
}
