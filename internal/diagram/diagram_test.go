package diagram

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"circuit-diagram/internal/layout"
	"circuit-diagram/internal/render"
	"circuit-diagram/internal/wiring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photo(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	return img
}

func labels(conns []wiring.Connection) []string {
	out := make([]string, len(conns))
	for i, c := range conns {
		out[i] = c.Label
	}
	return out
}

func TestScenarioLDRWithEmptyMapping(t *testing.T) {
	plan, err := NewPlan(Input{
		Board: photo(800, 480),
		Components: []Component{
			{Type: "LDR", Image: photo(400, 200), PinMap: map[string]string{"A0": "A0", "D0": ""}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"LDR VCC → 5V", "LDR GND → GND", "LDR A0 → A0"}, labels(plan.Connections))
	assert.Equal(t, "Arduino UNO", plan.BoardName)
	assert.Empty(t, plan.Skipped)
}

func TestScenarioUltrasonic(t *testing.T) {
	plan, err := NewPlan(Input{
		Board: photo(640, 640),
		Components: []Component{
			{Type: "Ultrasonic", Image: photo(300, 150), PinMap: map[string]string{"TRIG": "D9", "ECHO": "D10"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Connections, 4)

	c := plan.Connections
	assert.Equal(t, "5V", c[0].BoardPin)
	assert.Equal(t, wiring.ColorPower, c[0].Color)

	gnd1 := plan.BoardPins["GND1"]
	assert.Equal(t, "GND1", c[1].BoardPin)
	assert.Equal(t, gnd1, c[1].To)
	assert.Equal(t, gnd1.Add(layout.PinNudge), c[1].From, "ground pin should sit on the rail")

	assert.Equal(t, "Ultrasonic TRIG → D9", c[2].Label)
	assert.Equal(t, wiring.ColorTrigger, c[2].Color)
	assert.Equal(t, "Ultrasonic ECHO → D10", c[3].Label)
	assert.Equal(t, wiring.ColorEcho, c[3].Color)
}

func TestScenarioUnknownBoardPin(t *testing.T) {
	in := Input{
		Board: photo(800, 480),
		Components: []Component{
			{Type: "Ultrasonic", Image: photo(300, 150), PinMap: map[string]string{"TRIG": "D99", "ECHO": "D10"}},
		},
	}
	plan, err := NewPlan(in)
	require.NoError(t, err)
	assert.Len(t, plan.Connections, 3)
	assert.NotContains(t, labels(plan.Connections), "Ultrasonic TRIG → D99")

	out, err := Generate(in, render.DefaultOptions())
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestScenarioFiveTallModules(t *testing.T) {
	var comps []Component
	for i := 0; i < 5; i++ {
		typ := "LDR"
		if i%2 == 1 {
			typ = "Ultrasonic"
		}
		comps = append(comps, Component{Type: typ, Image: photo(100, 500)})
	}
	plan, err := NewPlan(Input{Board: photo(800, 480), Components: comps})
	require.NoError(t, err)
	require.Len(t, plan.Modules, 5)

	for i := 1; i < len(plan.Modules); i++ {
		upper, lower := plan.Modules[i-1].Box, plan.Modules[i].Box
		assert.Greater(t, upper.Y0, lower.Y1)
		assert.False(t, upper.Intersects(lower))
	}
	// Rails are always wired, even for modules off the canvas.
	assert.Len(t, plan.Connections, 10)
}

func TestUnknownTypeIsSkipped(t *testing.T) {
	plan, err := NewPlan(Input{
		Board: photo(800, 480),
		Components: []Component{
			{Type: "Servo", Image: photo(10, 10)},
			{Type: "LDR", Image: photo(400, 200), PinMap: map[string]string{"A0": "A1"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Modules, 1)
	assert.Equal(t, "LDR#0", plan.Modules[0].ID)
	assert.Equal(t, []string{"Servo"}, plan.Skipped)
	assert.Len(t, plan.Connections, 3)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"no board", Input{}, ErrMissingAsset},
		{"empty board", Input{Board: image.NewRGBA(image.Rect(0, 0, 0, 10))}, ErrInvalidImage},
		{"no module image", Input{Board: photo(8, 8), Components: []Component{{Type: "LDR"}}}, ErrMissingAsset},
		{"empty module image", Input{Board: photo(8, 8), Components: []Component{{Type: "LDR", Image: image.NewRGBA(image.Rect(0, 0, 5, 0))}}}, ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.in)
			assert.ErrorIs(t, err, tt.want)

			_, err = Generate(tt.in, render.DefaultOptions())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	in := Input{
		Board: photo(800, 480),
		Components: []Component{
			{Type: "LDR", Image: photo(400, 200), PinMap: map[string]string{"A0": "A0"}},
			{Type: "Ultrasonic", Image: photo(300, 150), PinMap: map[string]string{"TRIG": "D9", "ECHO": "D10"}},
		},
	}
	a, err := Generate(in, render.DefaultOptions())
	require.NoError(t, err)
	b, err := Generate(in, render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	opts := render.DefaultOptions()
	opts.DPI = 0
	_, err := Generate(Input{Board: photo(8, 8)}, opts)
	assert.Error(t, err)
}

func TestSceneDefaultsBoardTitle(t *testing.T) {
	board := photo(800, 480)
	plan, err := NewPlan(Input{Board: board, Components: []Component{{Type: "LDR", Image: photo(40, 20)}}})
	require.NoError(t, err)

	scene := plan.Scene(board, "")
	assert.Equal(t, "Arduino UNO", scene.Board.Title)
	require.Len(t, scene.Modules, 1)
	assert.Equal(t, "LDR", scene.Modules[0].Title)
	assert.Equal(t, plan.Modules[0].Box, scene.Modules[0].Box)

	assert.Equal(t, "My Board", plan.Scene(board, "My Board").Board.Title)
}
