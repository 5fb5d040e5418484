package discovery

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
	"github.com/padbridge/padbridge-go/pkg/log"
)

// Manager owns the controller devices of one gateway.
type Manager struct {
	api      gateway.Gateway
	system   *input.System
	registry *controller.Registry
	config   Config
	logger   *slog.Logger
	events   log.Logger

	buf      []handle.ControllerHandle
	devices  []*controller.Device
	byHandle map[handle.ControllerHandle]*controller.Device

	// rejected holds connected handles no device could be made for. They
	// are retried only after they disconnect and reappear.
	rejected map[handle.ControllerHandle]struct{}

	attached  bool
	closed    bool
	ticks     uint64
	onAdded   []func(d *controller.Device)
	onRemoved []func(d *controller.Device)
}

// NewManager creates a manager. Nothing happens until Tick is called or the
// manager is attached to the input system.
func NewManager(api gateway.Gateway, sys *input.System, reg *controller.Registry, config Config) *Manager {
	config.applyDefaults()
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		api:      api,
		system:   sys,
		registry: reg,
		config:   config,
		logger:   logger,
		events:   log.OrNoop(config.EventLogger),
		buf:      make([]handle.ControllerHandle, config.Capacity),
		byHandle: make(map[handle.ControllerHandle]*controller.Device),
		rejected: make(map[handle.ControllerHandle]struct{}),
	}
}

// Attach runs Tick at the start of every input system update and captures
// the state events applied to managed devices. Calling it again has no
// effect.
func (m *Manager) Attach() {
	if m.attached {
		return
	}
	m.attached = true
	m.system.OnBeforeUpdate(m.Tick)
	m.system.OnEvent(m.logState)
}

// OnDeviceAdded registers a callback run after a device went Live.
func (m *Manager) OnDeviceAdded(fn func(d *controller.Device)) {
	m.onAdded = append(m.onAdded, fn)
}

// OnDeviceRemoved registers a callback run after a device was removed.
func (m *Manager) OnDeviceRemoved(fn func(d *controller.Device)) {
	m.onRemoved = append(m.onRemoved, fn)
}

// Devices returns the live devices in discovery order.
func (m *Manager) Devices() []*controller.Device {
	out := make([]*controller.Device, len(m.devices))
	copy(out, m.devices)
	return out
}

// Device returns the live device for a controller handle.
func (m *Manager) Device(h handle.ControllerHandle) (*controller.Device, bool) {
	d, ok := m.byHandle[h]
	return d, ok
}

// Ticks returns how many times Tick ran.
func (m *Manager) Ticks() uint64 {
	return m.ticks
}

// Tick runs one discovery pass.
func (m *Manager) Tick() {
	if m.closed {
		return
	}
	m.ticks++
	m.api.RunFrame()

	n := m.api.ConnectedControllers(m.buf)
	if n > len(m.buf) {
		n = len(m.buf)
	}
	connected := make(map[handle.ControllerHandle]struct{}, n)
	for _, h := range m.buf[:n] {
		if !h.IsValid() {
			continue
		}
		if _, dup := connected[h]; dup {
			continue
		}
		connected[h] = struct{}{}
		if _, known := m.byHandle[h]; known {
			continue
		}
		if _, skip := m.rejected[h]; skip {
			continue
		}
		if err := m.create(h); err != nil {
			m.rejected[h] = struct{}{}
			m.logger.Warn("controller ignored", "controller", h, "error", err)
		}
	}

	for h := range m.rejected {
		if _, ok := connected[h]; !ok {
			delete(m.rejected, h)
		}
	}

	kept := m.devices[:0]
	var removed []*controller.Device
	for _, d := range m.devices {
		if _, ok := connected[d.Handle()]; ok {
			kept = append(kept, d)
			continue
		}
		removed = append(removed, d)
	}
	clear(m.devices[len(kept):])
	m.devices = kept
	for _, d := range removed {
		m.remove(d, "disconnected")
	}

	for _, d := range m.devices {
		d.Update()
	}
}

// Close removes every device and detaches the manager from future ticks.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	devices := m.devices
	m.devices = nil
	for _, d := range devices {
		m.remove(d, "closed")
	}
	clear(m.rejected)
}

func (m *Manager) product(h handle.ControllerHandle) string {
	if pr, ok := m.api.(gateway.ProductResolver); ok {
		if p := pr.ControllerProduct(h); p != "" {
			return p
		}
	}
	return m.config.DefaultProduct
}

func (m *Manager) create(h handle.ControllerHandle) error {
	desc := input.Description{
		Interface: m.config.Interface,
		Product:   m.product(h),
		Serial:    strconv.FormatUint(h.Value(), 10),
	}
	factory, ok := m.registry.Lookup(desc)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoLayout, desc)
	}
	layout := factory()

	name := fmt.Sprintf("%s:%d", desc.Product, h.Value())
	in, err := m.system.AddDevice(name, desc, layout.Controls())
	if err != nil {
		return fmt.Errorf("add input device %s: %w", name, err)
	}

	d := controller.NewDevice(m.system, in, m.api, layout)
	d.SetLogger(m.logger)
	if err := m.bringUp(d); err != nil {
		d.Remove()
		if rmErr := m.system.RemoveDevice(in); rmErr != nil {
			m.logger.Error("drop failed device", "device", name, "error", rmErr)
		}
		return err
	}

	m.devices = append(m.devices, d)
	m.byHandle[h] = d
	m.logDevice(d, controller.StateCreated, "connected")
	m.logger.Info("controller device added", "device", name, "controller", h, "sets", d.ActionSetNames())

	for _, fn := range m.onAdded {
		fn(d)
	}
	return nil
}

func (m *Manager) bringUp(d *controller.Device) error {
	if err := d.Setup(); err != nil {
		return err
	}
	if err := d.Resolve(); err != nil {
		return err
	}
	return d.Start()
}

func (m *Manager) remove(d *controller.Device, reason string) {
	old := d.State()
	d.Remove()
	delete(m.byHandle, d.Handle())
	if err := m.system.RemoveDevice(d.Input()); err != nil {
		m.logger.Warn("unregister device", "device", d.Input().Name(), "error", err)
	}
	m.logDevice(d, old, reason)
	m.logger.Info("controller device removed", "device", d.Input().Name(), "controller", d.Handle(), "reason", reason)

	for _, fn := range m.onRemoved {
		fn(d)
	}
}

func (m *Manager) logDevice(d *controller.Device, old controller.State, reason string) {
	m.events.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  m.config.SessionID,
		Layer:      log.LayerDevice,
		Category:   log.CategoryDevice,
		Controller: d.Handle().Value(),
		Device: &log.DeviceEvent{
			Name:     d.Input().Name(),
			Product:  d.Input().Description().Product,
			OldState: old.String(),
			NewState: d.State().String(),
			Reason:   reason,
		},
	})
}

func (m *Manager) logState(ev input.StateEvent, in *input.Device) {
	if in.Description().Interface != m.config.Interface {
		return
	}
	var ctrl uint64
	if v, err := strconv.ParseUint(in.Description().Serial, 10, 64); err == nil {
		ctrl = v
	}
	m.events.Log(log.Event{
		Timestamp:  ev.Time,
		SessionID:  m.config.SessionID,
		Layer:      log.LayerDevice,
		Category:   log.CategoryState,
		Controller: ctrl,
		State:      &log.StateEvent{Device: in.Name(), Values: ev.Values},
	})
}
