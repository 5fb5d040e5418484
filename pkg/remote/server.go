package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/log"
	"github.com/padbridge/padbridge-go/pkg/transport"
	"github.com/padbridge/padbridge-go/pkg/wire"
)

// maxListCapacity bounds the buffers a client may ask the server to
// allocate for list results.
const maxListCapacity = 1024

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address to listen on (default ":47800").
	Address string

	// Logger for operational logging. Nil discards.
	Logger *slog.Logger

	// EventLogger receives frame and message events (optional).
	EventLogger log.Logger
}

// Server exposes a gateway over transport connections. Calls from all
// connections are serialized, so gw needs no locking of its own.
type Server struct {
	gw     gateway.Gateway
	config ServerConfig
	logger *slog.Logger
	events log.Logger

	mu        sync.Mutex
	transport *transport.Server
}

// NewServer creates a server for gw.
func NewServer(gw gateway.Gateway, config ServerConfig) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		gw:     gw,
		config: config,
		logger: logger,
		events: log.OrNoop(config.EventLogger),
	}
	s.transport = transport.NewServer(transport.ServerConfig{
		Address:   config.Address,
		Logger:    config.EventLogger,
		OnMessage: s.handleMessage,
		OnConnect: func(c *transport.Conn) {
			s.logger.Info("remote client connected", "conn", c.ID(), "addr", c.RemoteAddr())
		},
		OnDisconnect: func(c *transport.Conn) {
			s.logger.Info("remote client disconnected", "conn", c.ID())
		},
		OnError: func(c *transport.Conn, err error) {
			s.logger.Warn("remote transport error", "error", err)
		},
	})
	return s
}

// Start begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	return s.transport.Start(ctx)
}

// Stop closes every connection.
func (s *Server) Stop() error {
	return s.transport.Stop()
}

// Addr returns the listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	return s.transport.Addr()
}

// ConnectionCount returns the number of connected clients.
func (s *Server) ConnectionCount() int {
	return s.transport.ConnectionCount()
}

func (s *Server) handleMessage(conn *transport.Conn, data []byte) {
	start := time.Now()

	req, err := wire.DecodeRequest(data)
	if req == nil {
		// Without a message ID there is nobody to answer.
		s.logger.Warn("dropping undecodable request", "conn", conn.ID(), "error", err)
		return
	}
	s.logMessage(conn.ID(), log.DirectionIn, &log.MessageEvent{
		Type:      log.MessageTypeRequest,
		MessageID: req.MessageID,
		Method:    &req.Method,
	})

	var resp *wire.Response
	if err != nil {
		resp = wire.NewErrorResponse(req.MessageID, wire.StatusUnknownMethod, err.Error())
	} else {
		resp = s.Handle(req)
	}

	out, err := wire.EncodeResponse(resp)
	if err != nil {
		s.logger.Error("encode response", "method", req.Method, "error", err)
		return
	}
	if err := conn.Send(out); err != nil {
		s.logger.Warn("send response", "conn", conn.ID(), "error", err)
		return
	}

	elapsed := time.Since(start)
	s.logMessage(conn.ID(), log.DirectionOut, &log.MessageEvent{
		Type:           log.MessageTypeResponse,
		MessageID:      resp.MessageID,
		Status:         &resp.Status,
		ProcessingTime: &elapsed,
	})
}

func (s *Server) logMessage(connID string, dir log.Direction, msg *log.MessageEvent) {
	s.events.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    dir,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Message:      msg,
	})
}

// Handle executes one request against the gateway.
func (s *Server) Handle(req *wire.Request) *wire.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, status, err := s.dispatch(req)
	if status != wire.StatusSuccess {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		return wire.NewErrorResponse(req.MessageID, status, msg)
	}
	resp, err := wire.NewResponse(req.MessageID, result)
	if err != nil {
		return wire.NewErrorResponse(req.MessageID, wire.StatusInternal, err.Error())
	}
	return resp
}

func (s *Server) dispatch(req *wire.Request) (any, wire.Status, error) {
	switch req.Method {
	case wire.MethodRunFrame:
		s.gw.RunFrame()
		return nil, wire.StatusSuccess, nil

	case wire.MethodConnectedControllers:
		var p wire.CapacityPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		buf := make([]handle.ControllerHandle, listCapacity(p.Capacity))
		n := clampCount(s.gw.ConnectedControllers(buf), len(buf))
		return wire.HandlesPayload{Values: handle.Values(buf[:n])}, wire.StatusSuccess, nil

	case wire.MethodActionSetHandle, wire.MethodDigitalActionHandle, wire.MethodAnalogActionHandle:
		var p wire.NamePayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		var v uint64
		switch req.Method {
		case wire.MethodActionSetHandle:
			v = s.gw.ActionSetHandle(p.Name).Value()
		case wire.MethodDigitalActionHandle:
			v = s.gw.DigitalActionHandle(p.Name).Value()
		default:
			v = s.gw.AnalogActionHandle(p.Name).Value()
		}
		return wire.HandlePayload{Value: v}, wire.StatusSuccess, nil

	case wire.MethodDigitalActionData:
		var p wire.ActionPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		d := s.gw.DigitalActionData(handle.New[handle.Controller](p.Controller), handle.New[handle.Action](p.Action))
		return wire.DigitalPayload{Pressed: d.Pressed, Active: d.Active}, wire.StatusSuccess, nil

	case wire.MethodAnalogActionData:
		var p wire.ActionPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		d := s.gw.AnalogActionData(handle.New[handle.Controller](p.Controller), handle.New[handle.Action](p.Action))
		return wire.AnalogPayload{X: d.Position.X, Y: d.Position.Y, Active: d.Active}, wire.StatusSuccess, nil

	case wire.MethodActivateActionSet:
		var p wire.ActionSetPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		s.gw.ActivateActionSet(handle.New[handle.Controller](p.Controller), handle.New[handle.ActionSet](p.Set))
		return nil, wire.StatusSuccess, nil

	case wire.MethodCurrentActionSet:
		var p wire.ControllerPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		set := s.gw.CurrentActionSet(handle.New[handle.Controller](p.Controller))
		return wire.HandlePayload{Value: set.Value()}, wire.StatusSuccess, nil

	case wire.MethodActivateActionSetLayer, wire.MethodDeactivateActionSetLayer:
		var p wire.ActionSetPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		c, l := handle.New[handle.Controller](p.Controller), handle.New[handle.ActionSet](p.Set)
		var err error
		if req.Method == wire.MethodActivateActionSetLayer {
			err = s.gw.ActivateActionSetLayer(c, l)
		} else {
			err = s.gw.DeactivateActionSetLayer(c, l)
		}
		return nil, statusOf(err), err

	case wire.MethodDeactivateAllActionSetLayers:
		var p wire.ControllerPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		err := s.gw.DeactivateAllActionSetLayers(handle.New[handle.Controller](p.Controller))
		return nil, statusOf(err), err

	case wire.MethodActiveActionSetLayers:
		var p wire.CapacityPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		buf := make([]handle.ActionSetHandle, listCapacity(p.Capacity))
		n, err := s.gw.ActiveActionSetLayers(handle.New[handle.Controller](p.Controller), buf)
		if err != nil {
			return nil, statusOf(err), err
		}
		return wire.HandlesPayload{Values: handle.Values(buf[:clampCount(n, len(buf))])}, wire.StatusSuccess, nil

	case wire.MethodControllerProduct:
		var p wire.ControllerPayload
		if err := wire.DecodePayload(req.Payload, &p); err != nil {
			return nil, wire.StatusBadRequest, err
		}
		var product string
		if pr, ok := s.gw.(gateway.ProductResolver); ok {
			product = pr.ControllerProduct(handle.New[handle.Controller](p.Controller))
		}
		return wire.ProductPayload{Product: product}, wire.StatusSuccess, nil
	}
	return nil, wire.StatusUnknownMethod, nil
}

func statusOf(err error) wire.Status {
	switch {
	case err == nil:
		return wire.StatusSuccess
	case errors.Is(err, gateway.ErrNotSupported):
		return wire.StatusNotSupported
	default:
		return wire.StatusInternal
	}
}

func listCapacity(requested uint16) int {
	switch {
	case requested == 0:
		return gateway.MaxConnectedControllers
	case requested > maxListCapacity:
		return maxListCapacity
	default:
		return int(requested)
	}
}

func clampCount(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
