// Package actionsync activates vendor action sets when the action maps of
// the same name are enabled.
package actionsync

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/log"
)

// Devices is the source of live controller devices. discovery.Manager
// implements it.
type Devices interface {
	Devices() []*controller.Device
	OnDeviceAdded(fn func(d *controller.Device))
}

// Config configures a Bridge.
type Config struct {
	// ActivateOnAdd activates, on a newly added device, the most recently
	// enabled map the device declares a set for.
	ActivateOnAdd bool

	// Logger for operational logging. Nil discards.
	Logger *slog.Logger

	// EventLogger receives activation events (optional).
	EventLogger log.Logger

	// SessionID is stamped on captured events.
	SessionID string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{ActivateOnAdd: true}
}

// Bridge forwards map enable transitions to device action-set activation.
// Activation happens synchronously inside Map.Enable.
type Bridge struct {
	devices Devices
	config  Config
	logger  *slog.Logger
	events  log.Logger

	// enabled lists enabled map names, most recently enabled last.
	enabled []string
	cancel  func()
}

// NewBridge subscribes to every map of asset. Maps already enabled count as
// enabled in asset order.
func NewBridge(devices Devices, asset *actions.Asset, config Config) *Bridge {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Bridge{
		devices: devices,
		config:  config,
		logger:  logger,
		events:  log.OrNoop(config.EventLogger),
	}
	for _, m := range asset.Maps() {
		if m.Enabled() {
			b.enabled = append(b.enabled, m.Name())
		}
	}
	b.cancel = asset.Subscribe(b.onChange)
	if config.ActivateOnAdd {
		devices.OnDeviceAdded(b.onDeviceAdded)
	}
	return b
}

// Close stops listening to the asset.
func (b *Bridge) Close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.enabled = nil
}

// EnabledMaps returns the enabled map names, most recently enabled last.
func (b *Bridge) EnabledMaps() []string {
	return slices.Clone(b.enabled)
}

func (b *Bridge) onChange(m *actions.Map, change actions.Change) {
	name := m.Name()
	b.enabled = slices.DeleteFunc(b.enabled, func(s string) bool { return s == name })
	if change != actions.Enabled {
		return
	}
	b.enabled = append(b.enabled, name)

	for _, d := range b.devices.Devices() {
		b.activate(d, name)
	}
}

func (b *Bridge) onDeviceAdded(d *controller.Device) {
	if b.cancel == nil {
		return
	}
	for i := len(b.enabled) - 1; i >= 0; i-- {
		if b.activate(d, b.enabled[i]) {
			return
		}
	}
}

// activate activates the named set on d if d resolved it to a valid handle.
func (b *Bridge) activate(d *controller.Device, name string) bool {
	set, ok := d.ActionSet(name)
	if !ok || !set.IsValid() {
		return false
	}
	if d.State() != controller.StateLive {
		return false
	}
	if err := d.ActivateActionSet(set); err != nil {
		b.logger.Warn("activate action set", "device", d.Input().Name(), "set", name, "error", err)
		return false
	}
	b.logger.Debug("action set activated", "device", d.Input().Name(), "set", name)
	b.events.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  b.config.SessionID,
		Layer:      log.LayerDevice,
		Category:   log.CategoryActivation,
		Controller: d.Handle().Value(),
		Activation: &log.ActivationEvent{Set: set.Value(), SetName: name, Source: log.SourceSync},
	})
	return true
}
