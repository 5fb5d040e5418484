// Package memory provides an in-memory Gateway.
//
// It backs tests and the simulator. Controllers, named actions and action
// sets are declared up front; per-controller action samples are injected
// with SetDigital and SetAnalog and become visible to readers at the next
// RunFrame, mirroring how a vendor runtime latches state once per frame.
package memory

import (
	"errors"
	"sync"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
)

// Errors returned by the injection API. The Gateway interface itself never
// returns them.
var (
	ErrUnknownController = errors.New("unknown controller")
	ErrInvalidHandle     = errors.New("handle value must be non-zero")
)

// Activation records one ActivateActionSet call.
type Activation struct {
	Controller handle.ControllerHandle
	Set        handle.ActionSetHandle
}

type controllerData struct {
	handle  handle.ControllerHandle
	product string

	// pending is written by injection, latched into current by RunFrame.
	pendingDigital map[handle.ActionHandle]gateway.DigitalActionData
	pendingAnalog  map[handle.ActionHandle]gateway.AnalogActionData
	digital        map[handle.ActionHandle]gateway.DigitalActionData
	analog         map[handle.ActionHandle]gateway.AnalogActionData

	current handle.ActionSetHandle
}

func newControllerData(h handle.ControllerHandle, product string) *controllerData {
	return &controllerData{
		handle:         h,
		product:        product,
		pendingDigital: make(map[handle.ActionHandle]gateway.DigitalActionData),
		pendingAnalog:  make(map[handle.ActionHandle]gateway.AnalogActionData),
		digital:        make(map[handle.ActionHandle]gateway.DigitalActionData),
		analog:         make(map[handle.ActionHandle]gateway.AnalogActionData),
	}
}

// Gateway is an in-memory gateway.Gateway.
type Gateway struct {
	gateway.Unsupported

	mu sync.Mutex

	controllers []*controllerData

	digitalActions map[string]handle.ActionHandle
	analogActions  map[string]handle.ActionHandle
	sets           map[string]handle.ActionSetHandle

	activations []Activation
	runFrames   int
}

// New creates an empty gateway.
func New() *Gateway {
	return &Gateway{
		digitalActions: make(map[string]handle.ActionHandle),
		analogActions:  make(map[string]handle.ActionHandle),
		sets:           make(map[string]handle.ActionSetHandle),
	}
}

// DefineDigitalAction makes name resolvable as a digital action.
func (g *Gateway) DefineDigitalAction(name string, value uint64) (handle.ActionHandle, error) {
	if value == 0 {
		return handle.ActionHandle{}, ErrInvalidHandle
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	h := handle.New[handle.Action](value)
	g.digitalActions[name] = h
	return h, nil
}

// DefineAnalogAction makes name resolvable as an analog action.
func (g *Gateway) DefineAnalogAction(name string, value uint64) (handle.ActionHandle, error) {
	if value == 0 {
		return handle.ActionHandle{}, ErrInvalidHandle
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	h := handle.New[handle.Action](value)
	g.analogActions[name] = h
	return h, nil
}

// DefineActionSet makes name resolvable as an action set.
func (g *Gateway) DefineActionSet(name string, value uint64) (handle.ActionSetHandle, error) {
	if value == 0 {
		return handle.ActionSetHandle{}, ErrInvalidHandle
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	h := handle.New[handle.ActionSet](value)
	g.sets[name] = h
	return h, nil
}

// AddController connects a controller. Adding a connected controller again
// only updates its product.
func (g *Gateway) AddController(value uint64, product string) (handle.ControllerHandle, error) {
	if value == 0 {
		return handle.ControllerHandle{}, ErrInvalidHandle
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	h := handle.New[handle.Controller](value)
	if c := g.find(h); c != nil {
		c.product = product
		return h, nil
	}
	g.controllers = append(g.controllers, newControllerData(h, product))
	return h, nil
}

// RemoveController disconnects a controller and drops its data.
func (g *Gateway) RemoveController(value uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	h := handle.New[handle.Controller](value)
	for i, c := range g.controllers {
		if c.handle == h {
			g.controllers = append(g.controllers[:i], g.controllers[i+1:]...)
			return true
		}
	}
	return false
}

// SetControllers replaces the connected set, keeping the data of
// controllers that stay connected. New controllers get an empty product.
func (g *Gateway) SetControllers(values ...uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := make([]*controllerData, 0, len(values))
	for _, v := range values {
		if v == 0 {
			return ErrInvalidHandle
		}
		h := handle.New[handle.Controller](v)
		if c := g.find(h); c != nil {
			next = append(next, c)
			continue
		}
		next = append(next, newControllerData(h, ""))
	}
	g.controllers = next
	return nil
}

// Controllers returns the connected controller handles.
func (g *Gateway) Controllers() []handle.ControllerHandle {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]handle.ControllerHandle, len(g.controllers))
	for i, c := range g.controllers {
		out[i] = c.handle
	}
	return out
}

// SetDigital injects a digital sample, visible after the next RunFrame.
func (g *Gateway) SetDigital(controller handle.ControllerHandle, action handle.ActionHandle, data gateway.DigitalActionData) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.find(controller)
	if c == nil {
		return ErrUnknownController
	}
	c.pendingDigital[action] = data
	return nil
}

// SetAnalog injects an analog sample, visible after the next RunFrame.
func (g *Gateway) SetAnalog(controller handle.ControllerHandle, action handle.ActionHandle, data gateway.AnalogActionData) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.find(controller)
	if c == nil {
		return ErrUnknownController
	}
	c.pendingAnalog[action] = data
	return nil
}

// RunFrameCount returns how many times RunFrame was called.
func (g *Gateway) RunFrameCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.runFrames
}

// Activations returns every recorded ActivateActionSet call in order.
func (g *Gateway) Activations() []Activation {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Activation, len(g.activations))
	copy(out, g.activations)
	return out
}

// ResetActivations clears the activation record.
func (g *Gateway) ResetActivations() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.activations = nil
}

// RunFrame latches injected samples.
func (g *Gateway) RunFrame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.runFrames++
	for _, c := range g.controllers {
		for a, d := range c.pendingDigital {
			c.digital[a] = d
		}
		for a, d := range c.pendingAnalog {
			c.analog[a] = d
		}
		clear(c.pendingDigital)
		clear(c.pendingAnalog)
	}
}

// ConnectedControllers implements gateway.Gateway.
func (g *Gateway) ConnectedControllers(out []handle.ControllerHandle) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, c := range g.controllers {
		if n == len(out) {
			break
		}
		out[n] = c.handle
		n++
	}
	return n
}

// ControllerProduct implements gateway.ProductResolver.
func (g *Gateway) ControllerProduct(controller handle.ControllerHandle) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.find(controller); c != nil {
		return c.product
	}
	return ""
}

// ActionSetHandle implements gateway.Gateway.
func (g *Gateway) ActionSetHandle(name string) handle.ActionSetHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sets[name]
}

// DigitalActionHandle implements gateway.Gateway.
func (g *Gateway) DigitalActionHandle(name string) handle.ActionHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.digitalActions[name]
}

// AnalogActionHandle implements gateway.Gateway.
func (g *Gateway) AnalogActionHandle(name string) handle.ActionHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analogActions[name]
}

// DigitalActionData implements gateway.Gateway.
func (g *Gateway) DigitalActionData(controller handle.ControllerHandle, action handle.ActionHandle) gateway.DigitalActionData {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.find(controller); c != nil {
		return c.digital[action]
	}
	return gateway.DigitalActionData{}
}

// AnalogActionData implements gateway.Gateway.
func (g *Gateway) AnalogActionData(controller handle.ControllerHandle, action handle.ActionHandle) gateway.AnalogActionData {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.find(controller); c != nil {
		return c.analog[action]
	}
	return gateway.AnalogActionData{}
}

// ActivateActionSet implements gateway.Gateway. Calls for unknown
// controllers are ignored and not recorded.
func (g *Gateway) ActivateActionSet(controller handle.ControllerHandle, set handle.ActionSetHandle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.find(controller)
	if c == nil {
		return
	}
	c.current = set
	g.activations = append(g.activations, Activation{Controller: controller, Set: set})
}

// CurrentActionSet implements gateway.Gateway.
func (g *Gateway) CurrentActionSet(controller handle.ControllerHandle) handle.ActionSetHandle {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.find(controller); c != nil {
		return c.current
	}
	return handle.ActionSetHandle{}
}

func (g *Gateway) find(h handle.ControllerHandle) *controllerData {
	for _, c := range g.controllers {
		if c.handle == h {
			return c
		}
	}
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ gateway.Gateway         = (*Gateway)(nil)
	_ gateway.ProductResolver = (*Gateway)(nil)
)
