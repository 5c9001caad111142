package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	ldr, ok := Lookup("LDR")
	require.True(t, ok)
	assert.Equal(t, []string{"VCC", "GND", "A0", "D0"}, ldr.Pins)
	assert.Equal(t, []string{"A0", "D0"}, ldr.SignalPins())

	us, ok := Lookup("Ultrasonic")
	require.True(t, ok)
	assert.Equal(t, []string{"TRIG", "ECHO"}, us.SignalPins())

	_, ok = Lookup("ldr")
	assert.False(t, ok)
}

func TestLookupDoesNotShareCatalog(t *testing.T) {
	ldr, _ := Lookup("LDR")
	ldr.Pins[0] = "XXX"

	again, _ := Lookup("LDR")
	assert.Equal(t, PowerPin, again.Pins[0])
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"LDR", "Ultrasonic"}, Names())
	for _, n := range Names() {
		_, ok := Lookup(n)
		assert.True(t, ok, n)
	}
}

func TestAnchor(t *testing.T) {
	pin, ok := Anchor("Ultrasonic", "GND")
	assert.True(t, ok)
	assert.Equal(t, "GND1", pin)

	_, ok = Anchor("LDR", "GND")
	assert.False(t, ok)
	_, ok = Anchor("Ultrasonic", "VCC")
	assert.False(t, ok)
}
