package gateway

import (
	"errors"

	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
)

// MaxConnectedControllers is the buffer size pollers pass to
// ConnectedControllers. Controllers beyond it are silently ignored.
const MaxConnectedControllers = 16

// ErrNotSupported is returned by operations with no implementation yet.
var ErrNotSupported = errors.New("operation not supported")

// DigitalActionData is one frame's sample of a digital action.
type DigitalActionData struct {
	// Pressed is the button state.
	Pressed bool `json:"pressed" yaml:"pressed"`

	// Active reports whether the action is bound in the current action set.
	Active bool `json:"active" yaml:"active"`
}

// AnalogActionData is one frame's sample of an analog action.
type AnalogActionData struct {
	// Position is the analog value. Single-axis actions use X.
	Position input.Vector2 `json:"position" yaml:"position"`

	// Active reports whether the action is bound in the current action set.
	Active bool `json:"active" yaml:"active"`
}

// Gateway is the capability interface over a vendor controller runtime.
type Gateway interface {
	// RunFrame advances the runtime's per-frame state.
	RunFrame()

	// ConnectedControllers fills out with the connected controller handles in
	// runtime order and returns how many were written. Controllers that do
	// not fit are dropped.
	ConnectedControllers(out []handle.ControllerHandle) int

	// ActionSetHandle resolves an action set name. Unknown names yield the
	// zero handle.
	ActionSetHandle(name string) handle.ActionSetHandle

	// DigitalActionHandle resolves a digital action name. Unknown names
	// yield the zero handle.
	DigitalActionHandle(name string) handle.ActionHandle

	// AnalogActionHandle resolves an analog action name. Unknown names yield
	// the zero handle.
	AnalogActionHandle(name string) handle.ActionHandle

	// DigitalActionData samples a digital action. Unknown controllers or
	// actions yield the zero sample.
	DigitalActionData(controller handle.ControllerHandle, action handle.ActionHandle) DigitalActionData

	// AnalogActionData samples an analog action. Unknown controllers or
	// actions yield the zero sample.
	AnalogActionData(controller handle.ControllerHandle, action handle.ActionHandle) AnalogActionData

	// ActivateActionSet replaces the controller's active action set.
	ActivateActionSet(controller handle.ControllerHandle, set handle.ActionSetHandle)

	// CurrentActionSet returns the most recently activated set, or the zero
	// handle if none was activated.
	CurrentActionSet(controller handle.ControllerHandle) handle.ActionSetHandle

	// ActivateActionSetLayer pushes an overlay set.
	ActivateActionSetLayer(controller handle.ControllerHandle, layer handle.ActionSetHandle) error

	// DeactivateActionSetLayer removes an overlay set.
	DeactivateActionSetLayer(controller handle.ControllerHandle, layer handle.ActionSetHandle) error

	// DeactivateAllActionSetLayers clears all overlay sets.
	DeactivateAllActionSetLayers(controller handle.ControllerHandle) error

	// ActiveActionSetLayers fills out with the active overlay sets.
	ActiveActionSetLayers(controller handle.ControllerHandle, out []handle.ActionSetHandle) (int, error)
}

// ProductResolver is implemented by gateways that can name the product of a
// connected controller. Discovery uses it to pick a device layout.
type ProductResolver interface {
	ControllerProduct(controller handle.ControllerHandle) string
}

// Unsupported implements the action-set layer operations by returning
// ErrNotSupported. Embed it in Gateway implementations.
type Unsupported struct{}

// ActivateActionSetLayer returns ErrNotSupported.
func (Unsupported) ActivateActionSetLayer(handle.ControllerHandle, handle.ActionSetHandle) error {
	return ErrNotSupported
}

// DeactivateActionSetLayer returns ErrNotSupported.
func (Unsupported) DeactivateActionSetLayer(handle.ControllerHandle, handle.ActionSetHandle) error {
	return ErrNotSupported
}

// DeactivateAllActionSetLayers returns ErrNotSupported.
func (Unsupported) DeactivateAllActionSetLayers(handle.ControllerHandle) error {
	return ErrNotSupported
}

// ActiveActionSetLayers returns ErrNotSupported.
func (Unsupported) ActiveActionSetLayers(handle.ControllerHandle, []handle.ActionSetHandle) (int, error) {
	return 0, ErrNotSupported
}

// ConnectedControllers is a helper that queries g with a buffer of
// MaxConnectedControllers and returns the filled prefix.
func ConnectedControllers(g Gateway) []handle.ControllerHandle {
	buf := make([]handle.ControllerHandle, MaxConnectedControllers)
	n := g.ConnectedControllers(buf)
	if n > len(buf) {
		n = len(buf)
	}
	return buf[:n]
}
