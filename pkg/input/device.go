package input

import "fmt"

// Description identifies what kind of device something is. Layout
// registries match on it.
type Description struct {
	// Interface names the integration that produced the device (e.g. "PadBridge").
	Interface string

	// Product names the concrete controller product.
	Product string

	// Serial is an optional integration-specific identity, such as the
	// vendor handle value of a controller.
	Serial string
}

// String returns "<interface>/<product>".
func (d Description) String() string {
	return d.Interface + "/" + d.Product
}

// Device is a registered input device with a named control tree.
type Device struct {
	id          int
	name        string
	description Description

	controls map[string]Control
	order    []string

	added bool
}

func newDevice(id int, name string, desc Description, specs []ControlSpec) (*Device, error) {
	d := &Device{
		id:          id,
		name:        name,
		description: desc,
		controls:    make(map[string]Control, len(specs)),
	}
	for _, spec := range specs {
		if _, exists := d.controls[spec.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateControl, spec.Name)
		}
		c, err := newControl(spec, d)
		if err != nil {
			return nil, fmt.Errorf("control %s: %w", spec.Name, err)
		}
		d.controls[spec.Name] = c
		d.order = append(d.order, spec.Name)
	}
	return d, nil
}

// ID returns the system-assigned device ID. IDs are never reused.
func (d *Device) ID() int {
	return d.id
}

// Name returns the device name.
func (d *Device) Name() string {
	return d.name
}

// Description returns the device description.
func (d *Device) Description() Description {
	return d.description
}

// Added reports whether the device is currently registered with a System.
func (d *Device) Added() bool {
	return d.added
}

// Control returns the named control.
func (d *Device) Control(name string) (Control, bool) {
	c, ok := d.controls[name]
	return c, ok
}

// Controls returns all controls in layout order.
func (d *Device) Controls() []Control {
	out := make([]Control, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.controls[name])
	}
	return out
}

// apply writes values to the named controls. All known values are applied
// even if one of them fails.
func (d *Device) apply(values map[string]any) error {
	var firstErr error
	for name, v := range values {
		c, ok := d.controls[name]
		if !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s/%s", ErrControlNotFound, d.name, name)
			}
			continue
		}
		if err := c.set(v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
