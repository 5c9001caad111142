package layout

import (
	"testing"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/canvas"
	"circuit-diagram/internal/module"
	"circuit-diagram/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, name string) module.Type {
	t.Helper()
	mt, ok := module.Lookup(name)
	require.True(t, ok, name)
	return mt
}

func boardPins(t *testing.T) map[string]geometry.Point2D {
	t.Helper()
	box, err := LayoutBoard(800, 480)
	require.NoError(t, err)
	return board.Uno().ResolveAll(box)
}

func TestLayoutModulesSingle(t *testing.T) {
	ldr := mustType(t, "LDR")
	got, err := LayoutModules([]ModuleInput{{Type: ldr, Width: 400, Height: 200}}, canvas.RightZone(), boardPins(t))
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "LDR#0", p.ID)
	assert.Equal(t, geometry.NewBox(57, 77, 93, 95), p.Box)
	require.Len(t, p.Pins, 4)

	// Even spread along the left edge, then nudged.
	for i, rp := range p.Pins {
		assert.Equal(t, ldr.Pins[i], rp.Pin)
		assert.Equal(t, "LDR#0", rp.Owner)
		assert.InDelta(t, 57+2, rp.At.X, 1e-9)
		assert.InDelta(t, 77+float64(i+1)/5*18+2, rp.At.Y, 1e-9)
	}
}

func TestLayoutModulesNoOverlap(t *testing.T) {
	ldr := mustType(t, "LDR")
	us := mustType(t, "Ultrasonic")

	mods := []ModuleInput{
		{Type: ldr, Width: 300, Height: 100},
		{Type: us, Width: 300, Height: 100},
		{Type: ldr, Width: 300, Height: 100},
	}
	got, err := LayoutModules(mods, canvas.RightZone(), boardPins(t))
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := 1; i < len(got); i++ {
		upper, lower := got[i-1].Box, got[i].Box
		assert.False(t, upper.Intersects(lower))
		assert.GreaterOrEqual(t, upper.Y0, lower.Y1+Spacing-1e-9)
		assert.InDelta(t, Spacing, upper.Y0-lower.Y1, 1e-9)
	}
}

// Five tall modules run off the bottom of the canvas; they are laid out anyway.
func TestLayoutModulesTallOverflow(t *testing.T) {
	ldr := mustType(t, "LDR")
	mods := make([]ModuleInput, module.MaxPerDiagram)
	for i := range mods {
		mods[i] = ModuleInput{Type: ldr, Width: 200, Height: 900}
	}

	got, err := LayoutModules(mods, canvas.RightZone(), boardPins(t))
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i, p := range got {
		assert.InDelta(t, canvas.RightWidth-BoardInset, p.Box.Width(), 1e-9)
		assert.InDelta(t, 162, p.Box.Height(), 1e-9)
		if i == 0 {
			assert.Equal(t, 95.0, p.Box.Y1)
			continue
		}
		prev := got[i-1].Box
		assert.Less(t, p.Box.Y1, prev.Y0, "module %d not below module %d", i, i-1)
		assert.Less(t, p.Box.Y0, prev.Y0)
		for j := 0; j < i; j++ {
			assert.False(t, p.Box.Intersects(got[j].Box))
		}
	}
	assert.Less(t, got[4].Box.Y0, canvas.Bounds().Y0)
}

func TestLayoutModulesAnchoredGround(t *testing.T) {
	pins := boardPins(t)
	us := mustType(t, "Ultrasonic")

	got, err := LayoutModules([]ModuleInput{{Type: us, Width: 400, Height: 200}}, canvas.RightZone(), pins)
	require.NoError(t, err)

	gnd, ok := got[0].Pin("GND")
	require.True(t, ok)
	assert.True(t, gnd.ApproxEqual(pins["GND1"].Add(PinNudge)))

	trig, ok := got[0].Pin("TRIG")
	require.True(t, ok)
	assert.InDelta(t, got[0].Box.X0+PinNudge.X, trig.X, 1e-9)
}

func TestLayoutModulesAnchorMissingFallsBack(t *testing.T) {
	us := mustType(t, "Ultrasonic")
	got, err := LayoutModules([]ModuleInput{{Type: us, Width: 400, Height: 200}}, canvas.RightZone(), nil)
	require.NoError(t, err)

	gnd, _ := got[0].Pin("GND")
	assert.InDelta(t, got[0].Box.X0+PinNudge.X, gnd.X, 1e-9)
}

func TestLayoutModulesInvalidImage(t *testing.T) {
	ldr := mustType(t, "LDR")
	_, err := LayoutModules([]ModuleInput{
		{Type: ldr, Width: 400, Height: 200},
		{Type: ldr, Width: 0, Height: 200},
	}, canvas.RightZone(), nil)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestPlacementPinUnknown(t *testing.T) {
	p := Placement{}
	_, ok := p.Pin("VCC")
	assert.False(t, ok)
}

func TestLayoutModulesPinsRunBottomToTop(t *testing.T) {
	us := mustType(t, "Ultrasonic")
	got, err := LayoutModules([]ModuleInput{{Type: us, Width: 400, Height: 200}}, canvas.RightZone(), nil)
	require.NoError(t, err)

	pins := got[0].Pins
	for i := 1; i < len(pins); i++ {
		assert.Greater(t, pins[i].At.Y, pins[i-1].At.Y, "%s should sit above %s", pins[i].Pin, pins[i-1].Pin)
	}
}
