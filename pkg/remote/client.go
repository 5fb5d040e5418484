package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
	"github.com/padbridge/padbridge-go/pkg/log"
	"github.com/padbridge/padbridge-go/pkg/transport"
	"github.com/padbridge/padbridge-go/pkg/wire"
)

// Client errors.
var (
	ErrRemote = errors.New("remote gateway error")
	ErrClosed = errors.New("client closed")
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// CallTimeout bounds each gateway call (default 2s).
	CallTimeout time.Duration

	// Logger for operational logging. Nil discards.
	Logger *slog.Logger

	// EventLogger receives frame and message events (optional).
	EventLogger log.Logger
}

// Client is a gateway.Gateway backed by a remote Server. Calls are
// serialized; each waits for its response.
type Client struct {
	conn    *transport.Conn
	config  ClientConfig
	logger  *slog.Logger
	events  log.Logger
	closeMu sync.Mutex
	closed  bool

	mu     sync.Mutex
	nextID uint32
}

// NewClient wraps an established connection.
func NewClient(conn *transport.Conn, config ClientConfig) *Client {
	if config.CallTimeout == 0 {
		config.CallTimeout = 2 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		conn:   conn,
		config: config,
		logger: logger,
		events: log.OrNoop(config.EventLogger),
	}
}

// Dial connects to a remote gateway server.
func Dial(ctx context.Context, address string, config ClientConfig) (*Client, error) {
	conn, err := transport.Dial(ctx, address, transport.DialConfig{Logger: config.EventLogger})
	if err != nil {
		return nil, err
	}
	return NewClient(conn, config), nil
}

// Close closes the connection.
func (c *Client) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// Done is closed once the connection is gone, either by Close or after a
// transport failure.
func (c *Client) Done() <-chan struct{} {
	return c.conn.Done()
}

// call sends one request and decodes the successful response payload into
// result (which may be nil).
func (c *Client) call(method wire.Method, payload, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	if c.nextID == 0 {
		c.nextID = 1
	}
	id := c.nextID

	req, err := wire.NewRequest(id, method, payload)
	if err != nil {
		return err
	}
	data, err := wire.EncodeRequest(req)
	if err != nil {
		return err
	}
	if err := c.conn.Send(data); err != nil {
		c.conn.Close()
		return fmt.Errorf("%s: %w", method, err)
	}
	c.logMessage(log.DirectionOut, &log.MessageEvent{Type: log.MessageTypeRequest, MessageID: id, Method: &method})

	deadline := time.Now().Add(c.config.CallTimeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%s: %w", method, context.DeadlineExceeded)
		}
		frame, err := c.conn.Receive(remaining)
		if err != nil {
			if !isTimeout(err) {
				// The stream is out of sync or gone; Done fires.
				c.conn.Close()
			}
			return fmt.Errorf("%s: %w", method, err)
		}
		resp, err := wire.DecodeResponse(frame)
		if err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
		if resp.MessageID != id {
			// Late answer to a call that already timed out.
			continue
		}
		c.logMessage(log.DirectionIn, &log.MessageEvent{Type: log.MessageTypeResponse, MessageID: id, Status: &resp.Status})

		switch resp.Status {
		case wire.StatusSuccess:
			if result == nil {
				return nil
			}
			return wire.DecodePayload(resp.Payload, result)
		case wire.StatusNotSupported:
			return gateway.ErrNotSupported
		default:
			return fmt.Errorf("%w: %s %s: %s", ErrRemote, method, resp.Status, resp.Message)
		}
	}
}

func (c *Client) logMessage(dir log.Direction, msg *log.MessageEvent) {
	c.events.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.conn.ID(),
		Direction:    dir,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Message:      msg,
	})
}

// query runs a call whose failure must look like "no data".
func (c *Client) query(method wire.Method, payload, result any) bool {
	if err := c.call(method, payload, result); err != nil {
		c.logger.Warn("remote gateway call failed", "method", method, "error", err)
		return false
	}
	return true
}

// RunFrame implements gateway.Gateway.
func (c *Client) RunFrame() {
	c.query(wire.MethodRunFrame, nil, nil)
}

// ConnectedControllers implements gateway.Gateway.
func (c *Client) ConnectedControllers(out []handle.ControllerHandle) int {
	var p wire.HandlesPayload
	if !c.query(wire.MethodConnectedControllers, wire.CapacityPayload{Capacity: capacityOf(len(out))}, &p) {
		return 0
	}
	n := 0
	for _, v := range p.Values {
		if n == len(out) {
			break
		}
		out[n] = handle.New[handle.Controller](v)
		n++
	}
	return n
}

// ActionSetHandle implements gateway.Gateway.
func (c *Client) ActionSetHandle(name string) handle.ActionSetHandle {
	var p wire.HandlePayload
	c.query(wire.MethodActionSetHandle, wire.NamePayload{Name: name}, &p)
	return handle.New[handle.ActionSet](p.Value)
}

// DigitalActionHandle implements gateway.Gateway.
func (c *Client) DigitalActionHandle(name string) handle.ActionHandle {
	var p wire.HandlePayload
	c.query(wire.MethodDigitalActionHandle, wire.NamePayload{Name: name}, &p)
	return handle.New[handle.Action](p.Value)
}

// AnalogActionHandle implements gateway.Gateway.
func (c *Client) AnalogActionHandle(name string) handle.ActionHandle {
	var p wire.HandlePayload
	c.query(wire.MethodAnalogActionHandle, wire.NamePayload{Name: name}, &p)
	return handle.New[handle.Action](p.Value)
}

// DigitalActionData implements gateway.Gateway.
func (c *Client) DigitalActionData(controller handle.ControllerHandle, action handle.ActionHandle) gateway.DigitalActionData {
	var p wire.DigitalPayload
	if !c.query(wire.MethodDigitalActionData, wire.ActionPayload{Controller: controller.Value(), Action: action.Value()}, &p) {
		return gateway.DigitalActionData{}
	}
	return gateway.DigitalActionData{Pressed: p.Pressed, Active: p.Active}
}

// AnalogActionData implements gateway.Gateway.
func (c *Client) AnalogActionData(controller handle.ControllerHandle, action handle.ActionHandle) gateway.AnalogActionData {
	var p wire.AnalogPayload
	if !c.query(wire.MethodAnalogActionData, wire.ActionPayload{Controller: controller.Value(), Action: action.Value()}, &p) {
		return gateway.AnalogActionData{}
	}
	return gateway.AnalogActionData{Position: input.Vector2{X: p.X, Y: p.Y}, Active: p.Active}
}

// ActivateActionSet implements gateway.Gateway.
func (c *Client) ActivateActionSet(controller handle.ControllerHandle, set handle.ActionSetHandle) {
	c.query(wire.MethodActivateActionSet, wire.ActionSetPayload{Controller: controller.Value(), Set: set.Value()}, nil)
}

// CurrentActionSet implements gateway.Gateway.
func (c *Client) CurrentActionSet(controller handle.ControllerHandle) handle.ActionSetHandle {
	var p wire.HandlePayload
	c.query(wire.MethodCurrentActionSet, wire.ControllerPayload{Controller: controller.Value()}, &p)
	return handle.New[handle.ActionSet](p.Value)
}

// ActivateActionSetLayer implements gateway.Gateway.
func (c *Client) ActivateActionSetLayer(controller handle.ControllerHandle, layer handle.ActionSetHandle) error {
	return c.call(wire.MethodActivateActionSetLayer, wire.ActionSetPayload{Controller: controller.Value(), Set: layer.Value()}, nil)
}

// DeactivateActionSetLayer implements gateway.Gateway.
func (c *Client) DeactivateActionSetLayer(controller handle.ControllerHandle, layer handle.ActionSetHandle) error {
	return c.call(wire.MethodDeactivateActionSetLayer, wire.ActionSetPayload{Controller: controller.Value(), Set: layer.Value()}, nil)
}

// DeactivateAllActionSetLayers implements gateway.Gateway.
func (c *Client) DeactivateAllActionSetLayers(controller handle.ControllerHandle) error {
	return c.call(wire.MethodDeactivateAllActionSetLayers, wire.ControllerPayload{Controller: controller.Value()}, nil)
}

// ActiveActionSetLayers implements gateway.Gateway.
func (c *Client) ActiveActionSetLayers(controller handle.ControllerHandle, out []handle.ActionSetHandle) (int, error) {
	var p wire.HandlesPayload
	if err := c.call(wire.MethodActiveActionSetLayers, wire.CapacityPayload{Controller: controller.Value(), Capacity: capacityOf(len(out))}, &p); err != nil {
		return 0, err
	}
	n := 0
	for _, v := range p.Values {
		if n == len(out) {
			break
		}
		out[n] = handle.New[handle.ActionSet](v)
		n++
	}
	return n, nil
}

// ControllerProduct implements gateway.ProductResolver.
func (c *Client) ControllerProduct(controller handle.ControllerHandle) string {
	var p wire.ProductPayload
	c.query(wire.MethodControllerProduct, wire.ControllerPayload{Controller: controller.Value()}, &p)
	return p.Product
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func capacityOf(n int) uint16 {
	if n > maxListCapacity {
		return maxListCapacity
	}
	return uint16(n)
}

// Compile-time interface satisfaction checks.
var (
	_ gateway.Gateway         = (*Client)(nil)
	_ gateway.ProductResolver = (*Client)(nil)
)
