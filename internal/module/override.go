package module

// PinKey identifies one pin of one module type.
type PinKey struct {
	Module string
	Pin    string
}

// Pins listed here are anchored on a board pin instead of their slot on the
// module edge. The value is the board pin name.
var anchors = map[PinKey]string{
	{Module: "Ultrasonic", Pin: GroundPin}: "GND1",
}

// Anchor returns the board pin a module pin is drawn from, if it has one.
func Anchor(moduleType, pin string) (string, bool) {
	boardPin, ok := anchors[PinKey{Module: moduleType, Pin: pin}]
	return boardPin, ok
}
