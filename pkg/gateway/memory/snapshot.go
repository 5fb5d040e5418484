package memory

import (
	"maps"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/persistence"
)

// Snapshot captures the declared names, connected controllers, their
// latched samples and active sets. Pending (not yet latched) samples and
// the activation record are not included.
func (g *Gateway) Snapshot() *persistence.GatewayState {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := &persistence.GatewayState{
		DigitalActions: make(map[string]uint64, len(g.digitalActions)),
		AnalogActions:  make(map[string]uint64, len(g.analogActions)),
		ActionSets:     make(map[string]uint64, len(g.sets)),
	}
	for name, h := range g.digitalActions {
		state.DigitalActions[name] = h.Value()
	}
	for name, h := range g.analogActions {
		state.AnalogActions[name] = h.Value()
	}
	for name, h := range g.sets {
		state.ActionSets[name] = h.Value()
	}

	for _, c := range g.controllers {
		cs := persistence.ControllerState{
			Handle:    c.handle.Value(),
			Product:   c.product,
			ActiveSet: c.current.Value(),
		}
		if len(c.digital) > 0 {
			cs.Digital = make(map[uint64]gateway.DigitalActionData, len(c.digital))
			for a, d := range c.digital {
				cs.Digital[a.Value()] = d
			}
		}
		if len(c.analog) > 0 {
			cs.Analog = make(map[uint64]gateway.AnalogActionData, len(c.analog))
			for a, d := range c.analog {
				cs.Analog[a.Value()] = d
			}
		}
		state.Controllers = append(state.Controllers, cs)
	}
	return state
}

// Restore replaces the gateway contents with a snapshot. Restored samples
// are latched immediately.
func (g *Gateway) Restore(state *persistence.GatewayState) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	digital := make(map[string]handle.ActionHandle, len(state.DigitalActions))
	analog := make(map[string]handle.ActionHandle, len(state.AnalogActions))
	sets := make(map[string]handle.ActionSetHandle, len(state.ActionSets))
	for name, v := range state.DigitalActions {
		if v == 0 {
			return ErrInvalidHandle
		}
		digital[name] = handle.New[handle.Action](v)
	}
	for name, v := range state.AnalogActions {
		if v == 0 {
			return ErrInvalidHandle
		}
		analog[name] = handle.New[handle.Action](v)
	}
	for name, v := range state.ActionSets {
		if v == 0 {
			return ErrInvalidHandle
		}
		sets[name] = handle.New[handle.ActionSet](v)
	}

	controllers := make([]*controllerData, 0, len(state.Controllers))
	for _, cs := range state.Controllers {
		if cs.Handle == 0 {
			return ErrInvalidHandle
		}
		c := newControllerData(handle.New[handle.Controller](cs.Handle), cs.Product)
		c.current = handle.New[handle.ActionSet](cs.ActiveSet)
		for a, d := range cs.Digital {
			c.digital[handle.New[handle.Action](a)] = d
		}
		for a, d := range cs.Analog {
			c.analog[handle.New[handle.Action](a)] = d
		}
		controllers = append(controllers, c)
	}

	g.digitalActions = digital
	g.analogActions = analog
	g.sets = sets
	g.controllers = controllers
	return nil
}

// ActionNames returns copies of the declared name tables.
func (g *Gateway) ActionNames() (digital, analog map[string]handle.ActionHandle, sets map[string]handle.ActionSetHandle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return maps.Clone(g.digitalActions), maps.Clone(g.analogActions), maps.Clone(g.sets)
}
