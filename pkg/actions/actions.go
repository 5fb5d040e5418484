package actions

import (
	"errors"
	"fmt"

	"github.com/padbridge/padbridge-go/pkg/input"
)

// Errors returned when building maps and assets.
var (
	ErrUnnamedAction   = errors.New("action has no name")
	ErrDuplicateAction = errors.New("duplicate action name")
	ErrUnnamedMap      = errors.New("action map has no name")
	ErrDuplicateMap    = errors.New("duplicate action map name")
)

// Change is an enablement transition.
type Change uint8

const (
	// Enabled is reported when a disabled map becomes enabled.
	Enabled Change = iota + 1

	// Disabled is reported when an enabled map becomes disabled.
	Disabled
)

// String returns the change name.
func (c Change) String() string {
	switch c {
	case Enabled:
		return "ENABLED"
	case Disabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// Listener receives enablement transitions.
type Listener func(m *Map, change Change)

// Action is one named input action.
type Action struct {
	// Name is unique within the owning map.
	Name string

	// ExpectedControl is the control kind the action drives. Buttons are
	// digital actions, everything else is analog.
	ExpectedControl input.ControlKind

	// Binding is an optional control path hint.
	Binding string
}

// IsDigital reports whether the action maps to a vendor digital action.
func (a *Action) IsDigital() bool {
	return !a.ExpectedControl.IsAnalog()
}

// Map is a named group of actions that is enabled or disabled as a unit.
type Map struct {
	name    string
	actions []*Action
	enabled bool

	asset     *Asset
	listeners subscribers
}

// NewMap creates an empty, disabled map.
func NewMap(name string) *Map {
	return &Map{name: name}
}

// Name returns the map name.
func (m *Map) Name() string {
	return m.name
}

// AddAction appends an action.
func (m *Map) AddAction(name string, kind input.ControlKind, binding string) (*Action, error) {
	if name == "" {
		return nil, fmt.Errorf("map %s: %w", m.name, ErrUnnamedAction)
	}
	if _, exists := m.Action(name); exists {
		return nil, fmt.Errorf("map %s: %w: %s", m.name, ErrDuplicateAction, name)
	}
	a := &Action{Name: name, ExpectedControl: kind, Binding: binding}
	m.actions = append(m.actions, a)
	return a, nil
}

// Action returns the named action.
func (m *Map) Action(name string) (*Action, bool) {
	for _, a := range m.actions {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Actions returns the actions in declaration order.
func (m *Map) Actions() []*Action {
	out := make([]*Action, len(m.actions))
	copy(out, m.actions)
	return out
}

// Enabled reports whether the map is enabled.
func (m *Map) Enabled() bool {
	return m.enabled
}

// Enable enables the map. Listeners run before Enable returns. Enabling an
// enabled map does nothing.
func (m *Map) Enable() {
	if m.enabled {
		return
	}
	m.enabled = true
	m.notify(Enabled)
}

// Disable disables the map. Disabling a disabled map does nothing.
func (m *Map) Disable() {
	if !m.enabled {
		return
	}
	m.enabled = false
	m.notify(Disabled)
}

// Subscribe registers fn for this map's transitions. The returned function
// removes the subscription.
func (m *Map) Subscribe(fn Listener) (cancel func()) {
	return m.listeners.add(fn)
}

func (m *Map) notify(c Change) {
	m.listeners.call(m, c)
	if m.asset != nil {
		m.asset.listeners.call(m, c)
	}
}

// subscribers is an ordered listener list with cancellation.
type subscribers struct {
	next    int
	entries []subscriber
}

type subscriber struct {
	id int
	fn Listener
}

func (s *subscribers) add(fn Listener) func() {
	s.next++
	id := s.next
	s.entries = append(s.entries, subscriber{id: id, fn: fn})
	return func() {
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

func (s *subscribers) call(m *Map, c Change) {
	// Listeners may cancel themselves while being called.
	entries := make([]subscriber, len(s.entries))
	copy(entries, s.entries)
	for _, e := range entries {
		e.fn(m, c)
	}
}
