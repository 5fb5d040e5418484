package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleRoundTripsRawValue(t *testing.T) {
	h := New[Controller](42)
	assert.Equal(t, uint64(42), h.Value())
	assert.True(t, h.IsValid())
}

func TestZeroHandleIsInvalid(t *testing.T) {
	var h ActionSetHandle
	assert.False(t, h.IsValid())
	assert.Equal(t, New[ActionSet](0), h)
}

func TestHandleEqualityAndMapKeys(t *testing.T) {
	a := New[Action](11)
	b := New[Action](11)
	c := New[Action](12)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	m := map[ActionHandle]string{a: "fire"}
	assert.Equal(t, "fire", m[b])
	_, ok := m[c]
	assert.False(t, ok)
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "controller:1", New[Controller](1).String())
	assert.Equal(t, "action:11", New[Action](11).String())
	assert.Equal(t, "action-set:13", New[ActionSet](13).String())
}

func TestValues(t *testing.T) {
	hs := []ControllerHandle{New[Controller](1), New[Controller](2)}
	assert.Equal(t, []uint64{1, 2}, Values(hs))
	assert.Empty(t, Values[Controller](nil))
}
