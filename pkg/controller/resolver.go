package controller

import (
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
)

// Resolver looks up vendor handles by name and records them on the device.
// Unknown names resolve to the zero handle, which is recorded as well.
type Resolver struct {
	api    gateway.Gateway
	device *Device
}

// ActionSet resolves an action set.
func (r *Resolver) ActionSet(name string) handle.ActionSetHandle {
	h := r.api.ActionSetHandle(name)
	r.device.sets[name] = h
	return h
}

// DigitalAction resolves a digital action.
func (r *Resolver) DigitalAction(name string) handle.ActionHandle {
	h := r.api.DigitalActionHandle(name)
	r.device.actions[name] = h
	return h
}

// AnalogAction resolves an analog action.
func (r *Resolver) AnalogAction(name string) handle.ActionHandle {
	h := r.api.AnalogActionHandle(name)
	r.device.actions[name] = h
	return h
}
