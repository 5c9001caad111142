package wiring

import (
	"testing"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/canvas"
	"circuit-diagram/internal/layout"
	"circuit-diagram/internal/module"
	"circuit-diagram/pkg/colorutil"
	"circuit-diagram/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	boardPins map[string]geometry.Point2D
	resolver  *Resolver
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	box, err := layout.LayoutBoard(800, 480)
	require.NoError(t, err)
	return fixture{
		boardPins: board.Uno().ResolveAll(box),
		resolver:  NewResolver(board.Uno()),
	}
}

func (f fixture) place(t *testing.T, name string) layout.Placement {
	t.Helper()
	mt, ok := module.Lookup(name)
	require.True(t, ok)
	ps, err := layout.LayoutModules([]layout.ModuleInput{{Type: mt, Width: 400, Height: 200}}, canvas.RightZone(), f.boardPins)
	require.NoError(t, err)
	return ps[0]
}

func labels(conns []Connection) []string {
	out := make([]string, len(conns))
	for i, c := range conns {
		out[i] = c.Label
	}
	return out
}

func TestResolveLDRSkipsEmptyMapping(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "LDR")

	conns := f.resolver.Resolve(p, map[string]string{"A0": "A0", "D0": ""}, f.boardPins)

	require.Len(t, conns, 3)
	assert.Equal(t, []string{"LDR VCC → 5V", "LDR GND → GND", "LDR A0 → A0"}, labels(conns))
	assert.Equal(t, ColorPower, conns[0].Color)
	assert.Equal(t, ColorGround, conns[1].Color)
	assert.Equal(t, ColorSignal, conns[2].Color)
	assert.Equal(t, f.boardPins["A0"], conns[2].To)
	assert.Equal(t, f.boardPins["5V"], conns[0].To)
	assert.Equal(t, f.boardPins["GND1"], conns[1].To)
}

func TestResolveUltrasonic(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "Ultrasonic")

	conns := f.resolver.Resolve(p, map[string]string{"TRIG": "D9", "ECHO": "D10"}, f.boardPins)

	require.Len(t, conns, 4)
	assert.Equal(t, []string{
		"Ultrasonic VCC → 5V",
		"Ultrasonic GND → GND",
		"Ultrasonic TRIG → D9",
		"Ultrasonic ECHO → D10",
	}, labels(conns))

	gnd := conns[1]
	assert.Equal(t, f.boardPins["GND1"], gnd.To)
	assert.True(t, gnd.From.ApproxEqual(f.boardPins["GND1"].Add(layout.PinNudge)))

	assert.Equal(t, ColorTrigger, conns[2].Color)
	assert.Equal(t, colorutil.Orange, conns[2].Color.RGBA())
	assert.Equal(t, ColorEcho, conns[3].Color)
	assert.Equal(t, colorutil.Purple, conns[3].Color.RGBA())
	assert.Equal(t, f.boardPins["D9"], conns[2].To)
	assert.Equal(t, f.boardPins["D10"], conns[3].To)
}

func TestResolveUnknownBoardPinIsSkipped(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "Ultrasonic")

	full := f.resolver.Resolve(p, map[string]string{"TRIG": "D9", "ECHO": "D10"}, f.boardPins)
	partial := f.resolver.Resolve(p, map[string]string{"TRIG": "D99", "ECHO": "D10"}, f.boardPins)

	assert.Len(t, partial, len(full)-1)
	assert.NotContains(t, labels(partial), "Ultrasonic TRIG → D99")
}

func TestResolveCountProperty(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "LDR")

	tests := []struct {
		name   string
		pinMap map[string]string
		want   int
	}{
		{"nil map", nil, 2},
		{"empty map", map[string]string{}, 2},
		{"one good", map[string]string{"A0": "A3"}, 3},
		{"two good", map[string]string{"A0": "A3", "D0": "D2"}, 4},
		{"case mismatch", map[string]string{"A0": "a3", "D0": "d2"}, 2},
		{"rail names ignored for VCC", map[string]string{"VCC": "3.3V", "A0": "A1"}, 3},
		{"unknown module pin", map[string]string{"OUT": "D2"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conns := f.resolver.Resolve(p, tt.pinMap, f.boardPins)
			assert.Len(t, conns, tt.want)
			assert.Equal(t, "VCC", conns[0].Pin)
			assert.Equal(t, "5V", conns[0].BoardPin)
		})
	}
}

func TestSignalColor(t *testing.T) {
	assert.Equal(t, ColorTrigger, SignalColor("TRIG"))
	assert.Equal(t, ColorEcho, SignalColor("ECHO"))
	assert.Equal(t, ColorSignal, SignalColor("A0"))
	assert.Equal(t, ColorSignal, SignalColor("trig"))
	assert.Equal(t, colorutil.Blue, ColorSignal.RGBA())
	assert.Equal(t, colorutil.Red, ColorPower.RGBA())
	assert.Equal(t, colorutil.Green, ColorGround.RGBA())
}

func TestResolveConnectionsUsesUnoRails(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "Ultrasonic")
	pinMap := map[string]string{"TRIG": "D9", "ECHO": "D10"}

	assert.Equal(t, f.resolver.Resolve(p, pinMap, f.boardPins), ResolveConnections(p, pinMap, f.boardPins))
}
