package input

import (
	"errors"
	"fmt"
	"strings"
)

// Control errors.
var (
	ErrUnknownControlKind = errors.New("unknown control kind")
	ErrValueType          = errors.New("value type does not match control")
	ErrControlNotFound    = errors.New("control not found")
	ErrControlType        = errors.New("control has a different type")
	ErrDuplicateControl   = errors.New("duplicate control name")
)

// Vector2 is a 2D position, used by sticks and 2D vector controls.
type Vector2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// ControlKind identifies the layout of a control.
type ControlKind uint8

const (
	// KindButton is a digital on/off control.
	KindButton ControlKind = iota + 1

	// KindAxis is a single analog value.
	KindAxis

	// KindStick is a 2D analog stick.
	KindStick

	// KindVector2 is a generic 2D analog value.
	KindVector2
)

// String returns the control layout name.
func (k ControlKind) String() string {
	switch k {
	case KindButton:
		return "Button"
	case KindAxis:
		return "Axis"
	case KindStick:
		return "Stick"
	case KindVector2:
		return "Vector2"
	default:
		return "UNKNOWN"
	}
}

// IsAnalog reports whether controls of this kind are polled as analog data.
func (k ControlKind) IsAnalog() bool {
	return k == KindAxis || k == KindStick || k == KindVector2
}

// ParseControlKind parses a layout name such as "Button" or "stick".
func ParseControlKind(s string) (ControlKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "button":
		return KindButton, nil
	case "axis":
		return KindAxis, nil
	case "stick":
		return KindStick, nil
	case "vector2":
		return KindVector2, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownControlKind, s)
}

// ControlSpec describes one control of a device layout.
type ControlSpec struct {
	Name string
	Kind ControlKind
}

// Control is a named input surface on a device.
type Control interface {
	// Name returns the control name, unique within its device.
	Name() string

	// Kind returns the control layout.
	Kind() ControlKind

	// Device returns the owning device.
	Device() *Device

	// Value returns the current value as bool, float32 or Vector2.
	Value() any

	set(v any) error
}

type controlBase struct {
	name   string
	device *Device
}

func (c *controlBase) Name() string    { return c.name }
func (c *controlBase) Device() *Device { return c.device }

// ButtonControl is a digital control.
type ButtonControl struct {
	controlBase
	pressed bool
}

// Kind returns KindButton.
func (c *ButtonControl) Kind() ControlKind { return KindButton }

// IsPressed reports whether the button is currently held.
func (c *ButtonControl) IsPressed() bool { return c.pressed }

// Value returns the pressed state.
func (c *ButtonControl) Value() any { return c.pressed }

func (c *ButtonControl) set(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: %s wants bool, got %T", ErrValueType, c.name, v)
	}
	c.pressed = b
	return nil
}

// AxisControl is a single analog value.
type AxisControl struct {
	controlBase
	value float32
}

// Kind returns KindAxis.
func (c *AxisControl) Kind() ControlKind { return KindAxis }

// ReadValue returns the current axis value.
func (c *AxisControl) ReadValue() float32 { return c.value }

// Value returns the current axis value.
func (c *AxisControl) Value() any { return c.value }

func (c *AxisControl) set(v any) error {
	switch x := v.(type) {
	case float32:
		c.value = x
	case float64:
		c.value = float32(x)
	case Vector2:
		// Analog actions always report a position; axes use X.
		c.value = x.X
	default:
		return fmt.Errorf("%w: %s wants float32, got %T", ErrValueType, c.name, v)
	}
	return nil
}

// Vector2Control is a 2D analog value.
type Vector2Control struct {
	controlBase
	value Vector2
}

// Kind returns KindVector2.
func (c *Vector2Control) Kind() ControlKind { return KindVector2 }

// ReadValue returns the current position.
func (c *Vector2Control) ReadValue() Vector2 { return c.value }

// Value returns the current position.
func (c *Vector2Control) Value() any { return c.value }

func (c *Vector2Control) set(v any) error {
	p, ok := v.(Vector2)
	if !ok {
		return fmt.Errorf("%w: %s wants Vector2, got %T", ErrValueType, c.name, v)
	}
	c.value = p
	return nil
}

// StickControl is a 2D analog stick.
type StickControl struct {
	Vector2Control
}

// Kind returns KindStick.
func (c *StickControl) Kind() ControlKind { return KindStick }

func newControl(spec ControlSpec, d *Device) (Control, error) {
	base := controlBase{name: spec.Name, device: d}
	switch spec.Kind {
	case KindButton:
		return &ButtonControl{controlBase: base}, nil
	case KindAxis:
		return &AxisControl{controlBase: base}, nil
	case KindStick:
		return &StickControl{Vector2Control{controlBase: base}}, nil
	case KindVector2:
		return &Vector2Control{controlBase: base}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownControlKind, spec.Kind)
}

// GetControl looks up a control by name and asserts its concrete type.
func GetControl[T Control](d *Device, name string) (T, error) {
	var zero T
	c, ok := d.Control(name)
	if !ok {
		return zero, fmt.Errorf("%w: %s/%s", ErrControlNotFound, d.Name(), name)
	}
	typed, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s/%s is %s", ErrControlType, d.Name(), name, c.Kind())
	}
	return typed, nil
}
