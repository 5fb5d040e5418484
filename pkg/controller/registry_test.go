package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padbridge/padbridge-go/pkg/input"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	var picked string
	generic := func() Layout { picked = "generic"; return &buttonLayout{} }
	gamepad := func() Layout { picked = "gamepad"; return &buttonLayout{} }

	require.NoError(t, r.Register(Matcher{Interface: InterfaceName}, generic))
	require.NoError(t, r.Register(Matcher{Interface: InterfaceName, Product: "Gamepad"}, gamepad))

	f, ok := r.Lookup(input.Description{Interface: InterfaceName, Product: "Gamepad"})
	require.True(t, ok)
	f()
	assert.Equal(t, "gamepad", picked)

	f, ok = r.Lookup(input.Description{Interface: InterfaceName, Product: "Wheel"})
	require.True(t, ok)
	f()
	assert.Equal(t, "generic", picked)

	_, ok = r.Lookup(input.Description{Interface: "HID", Product: "Gamepad"})
	assert.False(t, ok)
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()
	f := func() Layout { return &buttonLayout{} }

	assert.ErrorIs(t, r.Register(Matcher{Product: "Gamepad"}, f), ErrInvalidMatcher)
	require.NoError(t, r.Register(Matcher{Interface: InterfaceName, Product: "Gamepad"}, f))
	assert.ErrorIs(t, r.Register(Matcher{Interface: InterfaceName, Product: "Gamepad"}, f), ErrDuplicateMatcher)
}

func TestRegistryMatchers(t *testing.T) {
	r := NewRegistry()
	f := func() Layout { return &buttonLayout{} }
	require.NoError(t, r.Register(Matcher{Interface: InterfaceName, Product: "Wheel"}, f))
	require.NoError(t, r.Register(Matcher{Interface: InterfaceName}, f))
	require.NoError(t, r.Register(Matcher{Interface: "HID"}, f))

	assert.Equal(t, []Matcher{
		{Interface: "HID"},
		{Interface: InterfaceName},
		{Interface: InterfaceName, Product: "Wheel"},
	}, r.Matchers())
	assert.Equal(t, "PadBridge/*", Matcher{Interface: InterfaceName}.String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "CREATED", StateCreated.String())
	assert.Equal(t, "LIVE", StateLive.String())
	assert.Equal(t, "REMOVED", StateRemoved.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}
