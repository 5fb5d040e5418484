package remote

import (
	"context"
	"sync"

	"github.com/padbridge/padbridge-go/pkg/connection"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
)

// RedialConfig configures a Redialer.
type RedialConfig struct {
	// Client configures every dialed client. Its Logger is also used for
	// link state logging.
	Client ClientConfig

	// Backoff shapes the delays between redials.
	Backoff connection.BackoffConfig
}

// Redialer is a gateway.Gateway that keeps a Client connected to one
// address. While the link is down every query answers with zero values, so
// discovery sees no controllers and removes their devices; they come back
// on the first tick after the redial succeeds.
type Redialer struct {
	address string
	config  RedialConfig
	link    *connection.Manager

	mu     sync.RWMutex
	client *Client

	done chan struct{}
	wg   sync.WaitGroup
}

// NewRedialer creates a redialer for address. Call Connect to dial.
func NewRedialer(address string, config RedialConfig) *Redialer {
	r := &Redialer{
		address: address,
		config:  config,
		done:    make(chan struct{}),
	}
	r.link = connection.NewManager(r.dial, connection.Config{
		Backoff: config.Backoff,
		Logger:  config.Client.Logger,
	})
	return r
}

// Connect performs the first dial. Later drops are redialed automatically.
func (r *Redialer) Connect(ctx context.Context) error {
	return r.link.Connect(ctx)
}

// State returns the link state.
func (r *Redialer) State() connection.State {
	return r.link.State()
}

// Close stops redialing and closes the current client.
func (r *Redialer) Close() error {
	select {
	case <-r.done:
		return nil
	default:
	}
	close(r.done)
	r.link.Close()
	r.wg.Wait()

	r.mu.Lock()
	c := r.client
	r.client = nil
	r.mu.Unlock()
	if c != nil {
		return c.Close()
	}
	return nil
}

func (r *Redialer) dial(ctx context.Context) error {
	c, err := Dial(ctx, r.address, r.config.Client)
	if err != nil {
		return err
	}

	select {
	case <-r.done:
		c.Close()
		return connection.ErrClosed
	default:
	}

	r.mu.Lock()
	old := r.client
	r.client = c
	r.mu.Unlock()
	if old != nil {
		old.Close()
	}

	r.wg.Add(1)
	go r.watch(c)
	return nil
}

// watch reports the loss of c unless the redialer is closing.
func (r *Redialer) watch(c *Client) {
	defer r.wg.Done()
	select {
	case <-r.done:
		return
	case <-c.Done():
	}

	r.mu.Lock()
	current := r.client == c
	if current {
		r.client = nil
	}
	r.mu.Unlock()
	if current {
		r.link.ConnectionLost()
	}
}

func (r *Redialer) current() *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client
}

// RunFrame implements gateway.Gateway.
func (r *Redialer) RunFrame() {
	if c := r.current(); c != nil {
		c.RunFrame()
	}
}

// ConnectedControllers implements gateway.Gateway.
func (r *Redialer) ConnectedControllers(out []handle.ControllerHandle) int {
	if c := r.current(); c != nil {
		return c.ConnectedControllers(out)
	}
	return 0
}

// ActionSetHandle implements gateway.Gateway.
func (r *Redialer) ActionSetHandle(name string) handle.ActionSetHandle {
	if c := r.current(); c != nil {
		return c.ActionSetHandle(name)
	}
	return handle.ActionSetHandle{}
}

// DigitalActionHandle implements gateway.Gateway.
func (r *Redialer) DigitalActionHandle(name string) handle.ActionHandle {
	if c := r.current(); c != nil {
		return c.DigitalActionHandle(name)
	}
	return handle.ActionHandle{}
}

// AnalogActionHandle implements gateway.Gateway.
func (r *Redialer) AnalogActionHandle(name string) handle.ActionHandle {
	if c := r.current(); c != nil {
		return c.AnalogActionHandle(name)
	}
	return handle.ActionHandle{}
}

// DigitalActionData implements gateway.Gateway.
func (r *Redialer) DigitalActionData(controller handle.ControllerHandle, action handle.ActionHandle) gateway.DigitalActionData {
	if c := r.current(); c != nil {
		return c.DigitalActionData(controller, action)
	}
	return gateway.DigitalActionData{}
}

// AnalogActionData implements gateway.Gateway.
func (r *Redialer) AnalogActionData(controller handle.ControllerHandle, action handle.ActionHandle) gateway.AnalogActionData {
	if c := r.current(); c != nil {
		return c.AnalogActionData(controller, action)
	}
	return gateway.AnalogActionData{}
}

// ActivateActionSet implements gateway.Gateway.
func (r *Redialer) ActivateActionSet(controller handle.ControllerHandle, set handle.ActionSetHandle) {
	if c := r.current(); c != nil {
		c.ActivateActionSet(controller, set)
	}
}

// CurrentActionSet implements gateway.Gateway.
func (r *Redialer) CurrentActionSet(controller handle.ControllerHandle) handle.ActionSetHandle {
	if c := r.current(); c != nil {
		return c.CurrentActionSet(controller)
	}
	return handle.ActionSetHandle{}
}

// ActivateActionSetLayer implements gateway.Gateway.
func (r *Redialer) ActivateActionSetLayer(controller handle.ControllerHandle, layer handle.ActionSetHandle) error {
	if c := r.current(); c != nil {
		return c.ActivateActionSetLayer(controller, layer)
	}
	return connection.ErrNotConnected
}

// DeactivateActionSetLayer implements gateway.Gateway.
func (r *Redialer) DeactivateActionSetLayer(controller handle.ControllerHandle, layer handle.ActionSetHandle) error {
	if c := r.current(); c != nil {
		return c.DeactivateActionSetLayer(controller, layer)
	}
	return connection.ErrNotConnected
}

// DeactivateAllActionSetLayers implements gateway.Gateway.
func (r *Redialer) DeactivateAllActionSetLayers(controller handle.ControllerHandle) error {
	if c := r.current(); c != nil {
		return c.DeactivateAllActionSetLayers(controller)
	}
	return connection.ErrNotConnected
}

// ActiveActionSetLayers implements gateway.Gateway.
func (r *Redialer) ActiveActionSetLayers(controller handle.ControllerHandle, out []handle.ActionSetHandle) (int, error) {
	if c := r.current(); c != nil {
		return c.ActiveActionSetLayers(controller, out)
	}
	return 0, connection.ErrNotConnected
}

// ControllerProduct implements gateway.ProductResolver.
func (r *Redialer) ControllerProduct(controller handle.ControllerHandle) string {
	if c := r.current(); c != nil {
		return c.ControllerProduct(controller)
	}
	return ""
}

var (
	_ gateway.Gateway         = (*Redialer)(nil)
	_ gateway.ProductResolver = (*Redialer)(nil)
)
