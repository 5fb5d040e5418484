package input

import (
	"errors"
	"fmt"
	"time"
)

// System errors.
var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrEmptyName      = errors.New("device name is empty")
)

// DeviceChange describes a registry change.
type DeviceChange uint8

const (
	// DeviceAdded is reported after a device was registered.
	DeviceAdded DeviceChange = iota

	// DeviceRemoved is reported after a device was unregistered.
	DeviceRemoved
)

// String returns the change name.
func (c DeviceChange) String() string {
	switch c {
	case DeviceAdded:
		return "ADDED"
	case DeviceRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// StateEvent carries new control values for one device.
type StateEvent struct {
	// DeviceID identifies the target device.
	DeviceID int

	// Time is when the event was queued.
	Time time.Time

	// Values maps control names to bool, float32 or Vector2 values.
	Values map[string]any
}

// System is the device registry and update pump.
type System struct {
	devices []*Device
	nextID  int

	queue []StateEvent

	beforeUpdate   []func()
	onEvent        []func(ev StateEvent, d *Device)
	onDeviceChange []func(d *Device, change DeviceChange)

	updates uint64
	now     func() time.Time
}

// NewSystem creates an empty input system.
func NewSystem() *System {
	return &System{
		nextID: 1,
		now:    time.Now,
	}
}

// AddDevice builds a device from the control specs and registers it.
func (s *System) AddDevice(name string, desc Description, specs []ControlSpec) (*Device, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	d, err := newDevice(s.nextID, name, desc, specs)
	if err != nil {
		return nil, err
	}
	s.nextID++
	d.added = true
	s.devices = append(s.devices, d)

	for _, fn := range s.onDeviceChange {
		fn(d, DeviceAdded)
	}
	return d, nil
}

// RemoveDevice unregisters a device. Queued events for it are dropped.
func (s *System) RemoveDevice(d *Device) error {
	idx := -1
	for i, existing := range s.devices {
		if existing == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, d.Name())
	}

	s.devices = append(s.devices[:idx], s.devices[idx+1:]...)
	d.added = false

	kept := s.queue[:0]
	for _, ev := range s.queue {
		if ev.DeviceID != d.id {
			kept = append(kept, ev)
		}
	}
	s.queue = kept

	for _, fn := range s.onDeviceChange {
		fn(d, DeviceRemoved)
	}
	return nil
}

// Devices returns the registered devices in registration order.
func (s *System) Devices() []*Device {
	out := make([]*Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// DeviceByID returns a registered device.
func (s *System) DeviceByID(id int) (*Device, bool) {
	for _, d := range s.devices {
		if d.id == id {
			return d, true
		}
	}
	return nil, false
}

// OnBeforeUpdate registers a hook run at the start of every Update.
func (s *System) OnBeforeUpdate(fn func()) {
	s.beforeUpdate = append(s.beforeUpdate, fn)
}

// OnEvent registers a listener called after each state event is applied.
func (s *System) OnEvent(fn func(ev StateEvent, d *Device)) {
	s.onEvent = append(s.onEvent, fn)
}

// OnDeviceChange registers a listener for device registration changes.
func (s *System) OnDeviceChange(fn func(d *Device, change DeviceChange)) {
	s.onDeviceChange = append(s.onDeviceChange, fn)
}

// QueueStateEvent queues new control values for d. They are applied during
// the next Update (or the current one, when called from a before-update hook).
func (s *System) QueueStateEvent(d *Device, values map[string]any) error {
	if d == nil || !d.added {
		return ErrDeviceNotFound
	}
	s.queue = append(s.queue, StateEvent{
		DeviceID: d.id,
		Time:     s.now(),
		Values:   values,
	})
	return nil
}

// Update runs one tick: before-update hooks, then queued events.
// Errors applying individual events do not stop the tick; the first one is
// returned.
func (s *System) Update() error {
	s.updates++

	for _, fn := range s.beforeUpdate {
		fn()
	}

	queue := s.queue
	s.queue = nil

	var firstErr error
	for _, ev := range queue {
		d, ok := s.DeviceByID(ev.DeviceID)
		if !ok {
			continue
		}
		if err := d.apply(ev.Values); err != nil && firstErr == nil {
			firstErr = err
		}
		for _, fn := range s.onEvent {
			fn(ev, d)
		}
	}
	return firstErr
}

// UpdateCount returns how many times Update has run.
func (s *System) UpdateCount() uint64 {
	return s.updates
}
