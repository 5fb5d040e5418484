package controller

import (
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/input"
)

// Layout is the per-product behavior of a controller device. A new Layout
// value is created for every device.
type Layout interface {
	// Controls describes the control tree of the generic device.
	Controls() []input.ControlSpec

	// FinishSetup binds typed controls from d.Input(). It runs after the
	// device handle was established.
	FinishSetup(d *Device) error

	// ResolveActions looks up vendor handles through r. It runs exactly once.
	ResolveActions(r *Resolver)

	// Update polls api for the current action data and queues the new
	// control values with d.QueueState. It must not change action sets.
	Update(d *Device, api gateway.Gateway)
}

// Factory creates a Layout for one device.
type Factory func() Layout
