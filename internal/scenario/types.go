// Package scenario runs YAML-described controller scenarios against the
// in-memory gateway, the discovery manager and the action sync bridge.
package scenario

import "gopkg.in/yaml.v3"

// Scenario is one scenario file.
type Scenario struct {
	// ID is the unique scenario identifier (e.g., "SC-DISC-001").
	ID string `yaml:"id"`

	// Name is a human-readable name.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description,omitempty"`

	// Setup declares the vendor runtime and the action maps.
	Setup Setup `yaml:"setup"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// File is the path the scenario was loaded from.
	File string `yaml:"-"`
}

// Setup declares the simulated vendor runtime.
type Setup struct {
	// Layout names the registered layout set (default "gamepad").
	Layout string `yaml:"layout,omitempty"`

	// Capacity overrides the discovery buffer size.
	Capacity int `yaml:"capacity,omitempty"`

	// ActivateOnAdd overrides the sync bridge default.
	ActivateOnAdd *bool `yaml:"activate_on_add,omitempty"`

	// DigitalActions, AnalogActions and ActionSets map names to vendor
	// handle values.
	DigitalActions map[string]uint64 `yaml:"digital_actions,omitempty"`
	AnalogActions  map[string]uint64 `yaml:"analog_actions,omitempty"`
	ActionSets     map[string]uint64 `yaml:"action_sets,omitempty"`

	// Asset is an action asset document (see actions.ParseAsset).
	Asset yaml.Node `yaml:"asset,omitempty"`
}

// Step is one scenario action.
type Step struct {
	// Action is one of connect, disconnect, digital, analog, tick, enable,
	// disable, activate.
	Action string `yaml:"action"`

	// Description explains what this step does.
	Description string `yaml:"description,omitempty"`

	Controller uint64 `yaml:"controller,omitempty"`
	Product    string `yaml:"product,omitempty"`

	// Name is the action, map or set name, depending on Action.
	Name string `yaml:"name,omitempty"`

	Pressed bool    `yaml:"pressed,omitempty"`
	X       float32 `yaml:"x,omitempty"`
	Y       float32 `yaml:"y,omitempty"`

	// Active defaults to true for injected samples.
	Active *bool `yaml:"active,omitempty"`

	// Count repeats a tick (default 1).
	Count int `yaml:"count,omitempty"`

	// Expect is checked after the step ran.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists conditions checked after a step. Unset fields are not
// checked.
type Expect struct {
	// Devices is the exact list of live controller handles in discovery
	// order.
	Devices *[]uint64 `yaml:"devices,omitempty"`

	// Controls checks control values of live devices.
	Controls []ControlExpect `yaml:"controls,omitempty"`

	// CurrentSet maps controller handles to the name of the active set
	// ("" for none).
	CurrentSet map[uint64]string `yaml:"current_set,omitempty"`

	// Activations is the exact gateway activation record so far.
	Activations *[]ActivationExpect `yaml:"activations,omitempty"`

	// Resolves and Updates map controller handles to lifecycle call counts
	// of the device's current layout.
	Resolves map[uint64]int `yaml:"resolves,omitempty"`
	Updates  map[uint64]int `yaml:"updates,omitempty"`

	// State maps controller handles to lifecycle state names.
	State map[uint64]string `yaml:"state,omitempty"`
}

// ControlExpect checks one control.
type ControlExpect struct {
	Controller uint64      `yaml:"controller"`
	Control    string      `yaml:"control"`
	Pressed    *bool       `yaml:"pressed,omitempty"`
	Value      *float32    `yaml:"value,omitempty"`
	Position   *[2]float32 `yaml:"position,omitempty"`
}

// ActivationExpect is one expected activation.
type ActivationExpect struct {
	Controller uint64 `yaml:"controller"`
	Set        string `yaml:"set"`
}
