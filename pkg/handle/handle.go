package handle

import "strconv"

// Kind is the set of phantom types a Handle can be parameterized with.
type Kind interface {
	Controller | Action | ActionSet

	kindName() string
}

// Controller tags handles identifying a connected controller.
type Controller struct{}

// Action tags handles identifying a digital or analog action.
type Action struct{}

// ActionSet tags handles identifying an action set (or action set layer).
type ActionSet struct{}

func (Controller) kindName() string { return "controller" }
func (Action) kindName() string     { return "action" }
func (ActionSet) kindName() string  { return "action-set" }

// Handle is an opaque vendor-assigned identifier of kind K.
// The zero value is the invalid handle.
type Handle[K Kind] struct {
	value uint64
}

// Convenience aliases for the three handle kinds.
type (
	ControllerHandle = Handle[Controller]
	ActionHandle     = Handle[Action]
	ActionSetHandle  = Handle[ActionSet]
)

// New wraps a raw vendor value.
func New[K Kind](value uint64) Handle[K] {
	return Handle[K]{value: value}
}

// Value returns the raw vendor value.
func (h Handle[K]) Value() uint64 {
	return h.value
}

// IsValid reports whether h refers to something. The zero handle never does.
func (h Handle[K]) IsValid() bool {
	return h.value != 0
}

// String formats the handle as "<kind>:<value>".
func (h Handle[K]) String() string {
	var k K
	return k.kindName() + ":" + strconv.FormatUint(h.value, 10)
}

// Values converts a slice of handles back to raw values.
func Values[K Kind](handles []Handle[K]) []uint64 {
	out := make([]uint64, len(handles))
	for i, h := range handles {
		out[i] = h.value
	}
	return out
}
