package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
)

// Device errors.
var (
	ErrInvalidHandle   = errors.New("device has no valid controller handle")
	ErrNotSetUp        = errors.New("device setup has not run")
	ErrAlreadySetUp    = errors.New("device setup already ran")
	ErrAlreadyResolved = errors.New("actions already resolved")
	ErrNotResolved     = errors.New("actions not resolved")
	ErrRemoved         = errors.New("device removed")
	ErrInvalidState    = errors.New("invalid state transition")
)

// Device is a generic input device backed by one vendor controller.
type Device struct {
	handle handle.ControllerHandle
	input  *input.Device
	system *input.System
	api    gateway.Gateway
	layout Layout
	logger *slog.Logger

	state State
	setUp bool

	sets    map[string]handle.ActionSetHandle
	actions map[string]handle.ActionHandle

	resolveCount uint64
	updateCount  uint64
}

// NewDevice wraps a registered input device. The controller handle is taken
// from the device description's Serial during Setup.
func NewDevice(sys *input.System, in *input.Device, api gateway.Gateway, layout Layout) *Device {
	return &Device{
		input:   in,
		system:  sys,
		api:     api,
		layout:  layout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		sets:    make(map[string]handle.ActionSetHandle),
		actions: make(map[string]handle.ActionHandle),
	}
}

// SetLogger sets the logger used for failures the layout cannot report.
// Nil discards.
func (d *Device) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d.logger = logger
}

// Handle returns the vendor controller handle. It is the zero handle until
// Setup ran.
func (d *Device) Handle() handle.ControllerHandle {
	return d.handle
}

// Input returns the generic input device.
func (d *Device) Input() *input.Device {
	return d.input
}

// Layout returns the device layout.
func (d *Device) Layout() Layout {
	return d.layout
}

// State returns the lifecycle state.
func (d *Device) State() State {
	return d.state
}

// Setup establishes the controller handle from the device identity and
// then runs the layout's FinishSetup.
func (d *Device) Setup() error {
	if d.setUp {
		return ErrAlreadySetUp
	}
	v, err := strconv.ParseUint(d.input.Description().Serial, 10, 64)
	if err != nil || v == 0 {
		return fmt.Errorf("%w: serial %q", ErrInvalidHandle, d.input.Description().Serial)
	}
	d.handle = handle.New[handle.Controller](v)
	d.setUp = true

	if err := d.layout.FinishSetup(d); err != nil {
		return fmt.Errorf("finish setup %s: %w", d.input.Name(), err)
	}
	return nil
}

// Resolve runs the layout's ResolveActions and moves the device to
// ActionsResolved. It can only succeed once.
func (d *Device) Resolve() error {
	if !d.setUp {
		return ErrNotSetUp
	}
	if d.state != StateCreated {
		return ErrAlreadyResolved
	}
	d.resolveCount++
	d.layout.ResolveActions(&Resolver{api: d.api, device: d})
	d.state = StateActionsResolved
	return nil
}

// Start moves a resolved device to Live.
func (d *Device) Start() error {
	if d.state != StateActionsResolved {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, d.state, StateLive)
	}
	d.state = StateLive
	return nil
}

// Update polls the gateway through the layout. It does nothing unless the
// device is Live.
func (d *Device) Update() {
	if d.state != StateLive {
		return
	}
	d.updateCount++
	d.layout.Update(d, d.api)
}

// Remove moves the device to Removed. Removed devices are never updated
// again.
func (d *Device) Remove() {
	d.state = StateRemoved
}

// ActivateActionSet makes set the controller's active action set.
func (d *Device) ActivateActionSet(set handle.ActionSetHandle) error {
	switch d.state {
	case StateCreated:
		return ErrNotResolved
	case StateRemoved:
		return ErrRemoved
	}
	d.api.ActivateActionSet(d.handle, set)
	return nil
}

// CurrentActionSet returns the controller's active action set.
func (d *Device) CurrentActionSet() handle.ActionSetHandle {
	return d.api.CurrentActionSet(d.handle)
}

// ActionSet returns the handle resolved for the named set. ok is false when
// the layout never asked for the set; the handle may still be zero when
// the vendor runtime did not know it.
func (d *Device) ActionSet(name string) (h handle.ActionSetHandle, ok bool) {
	h, ok = d.sets[name]
	return h, ok
}

// Action returns the handle resolved for the named action.
func (d *Device) Action(name string) (h handle.ActionHandle, ok bool) {
	h, ok = d.actions[name]
	return h, ok
}

// ActionSetNames returns the sorted names of every resolved action set.
func (d *Device) ActionSetNames() []string {
	out := make([]string, 0, len(d.sets))
	for name := range d.sets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// QueueState queues new control values for the next input update. A
// failure is logged as well as returned, since layouts poll from Update,
// which has no error result.
func (d *Device) QueueState(values map[string]any) error {
	if err := d.system.QueueStateEvent(d.input, values); err != nil {
		d.logger.Warn("queue state", "device", d.input.Name(), "controller", d.handle, "error", err)
		return fmt.Errorf("queue state %s: %w", d.input.Name(), err)
	}
	return nil
}
