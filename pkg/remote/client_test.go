package remote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
	"github.com/padbridge/padbridge-go/pkg/log"
)

type captureLogger struct {
	events chan log.Event
}

func (c *captureLogger) Log(e log.Event) {
	select {
	case c.events <- e:
	default:
	}
}

func startPair(t *testing.T, gw gateway.Gateway, events log.Logger) (*Server, *Client) {
	t.Helper()
	s := NewServer(gw, ServerConfig{Address: "127.0.0.1:0"})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { s.Stop() })

	c, err := Dial(context.Background(), s.Addr().String(), ClientConfig{CallTimeout: time.Second, EventLogger: events})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return s, c
}

func TestClientMatchesLocalGateway(t *testing.T) {
	gw := newTestGateway(t)
	_, c := startPair(t, gw, nil)

	ctrl := handle.New[handle.Controller](1)
	fire := handle.New[handle.Action](11)
	look := handle.New[handle.Action](12)
	require.NoError(t, gw.SetDigital(ctrl, fire, gateway.DigitalActionData{Pressed: true, Active: true}))
	require.NoError(t, gw.SetAnalog(ctrl, look, gateway.AnalogActionData{Position: input.Vector2{X: 0.5, Y: -1}, Active: true}))

	c.RunFrame()
	assert.Equal(t, 1, gw.RunFrameCount())

	var buf [gateway.MaxConnectedControllers]handle.ControllerHandle
	n := c.ConnectedControllers(buf[:])
	assert.Equal(t, []handle.ControllerHandle{ctrl, handle.New[handle.Controller](2)}, buf[:n])

	assert.Equal(t, gw.ActionSetHandle("gameplay"), c.ActionSetHandle("gameplay"))
	assert.Equal(t, fire, c.DigitalActionHandle("fire"))
	assert.Equal(t, look, c.AnalogActionHandle("look"))

	assert.Equal(t, gw.DigitalActionData(ctrl, fire), c.DigitalActionData(ctrl, fire))
	assert.Equal(t, gw.AnalogActionData(ctrl, look), c.AnalogActionData(ctrl, look))

	set := c.ActionSetHandle("gameplay")
	c.ActivateActionSet(ctrl, set)
	assert.Equal(t, set, gw.CurrentActionSet(ctrl))
	assert.Equal(t, set, c.CurrentActionSet(ctrl))
	assert.Equal(t, "Gamepad", c.ControllerProduct(ctrl))
}

func TestClientUnknownNamesYieldZero(t *testing.T) {
	_, c := startPair(t, newTestGateway(t), nil)

	assert.False(t, c.ActionSetHandle("nope").IsValid())
	assert.False(t, c.DigitalActionHandle("nope").IsValid())
	assert.False(t, c.AnalogActionHandle("fire").IsValid())
	assert.Equal(t, gateway.DigitalActionData{}, c.DigitalActionData(handle.New[handle.Controller](99), handle.New[handle.Action](11)))
}

func TestClientTruncatesToBuffer(t *testing.T) {
	_, c := startPair(t, newTestGateway(t), nil)

	buf := make([]handle.ControllerHandle, 1)
	assert.Equal(t, 1, c.ConnectedControllers(buf))
	assert.Equal(t, handle.New[handle.Controller](1), buf[0])
}

func TestClientLayersNotSupported(t *testing.T) {
	_, c := startPair(t, newTestGateway(t), nil)
	ctrl := handle.New[handle.Controller](1)

	assert.ErrorIs(t, c.ActivateActionSetLayer(ctrl, handle.New[handle.ActionSet](13)), gateway.ErrNotSupported)
	assert.ErrorIs(t, c.DeactivateActionSetLayer(ctrl, handle.New[handle.ActionSet](13)), gateway.ErrNotSupported)
	assert.ErrorIs(t, c.DeactivateAllActionSetLayers(ctrl), gateway.ErrNotSupported)
	n, err := c.ActiveActionSetLayers(ctrl, make([]handle.ActionSetHandle, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, gateway.ErrNotSupported)
}

func TestClientAfterCloseYieldsZero(t *testing.T) {
	_, c := startPair(t, newTestGateway(t), nil)
	require.NoError(t, c.Close())

	var buf [gateway.MaxConnectedControllers]handle.ControllerHandle
	assert.Zero(t, c.ConnectedControllers(buf[:]))
	assert.False(t, c.ActionSetHandle("gameplay").IsValid())
	assert.Empty(t, c.ControllerProduct(handle.New[handle.Controller](1)))

	err := c.DeactivateAllActionSetLayers(handle.New[handle.Controller](1))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, gateway.ErrNotSupported))
}

func TestClientLogsMessageEvents(t *testing.T) {
	capture := &captureLogger{events: make(chan log.Event, 64)}
	_, c := startPair(t, newTestGateway(t), capture)

	c.RunFrame()

	var sawRequest, sawResponse bool
	timeout := time.After(time.Second)
	for !(sawRequest && sawResponse) {
		select {
		case e := <-capture.events:
			if e.Category != log.CategoryMessage {
				continue
			}
			switch e.Message.Type {
			case log.MessageTypeRequest:
				sawRequest = e.Direction == log.DirectionOut
			case log.MessageTypeResponse:
				sawResponse = e.Direction == log.DirectionIn
			}
		case <-timeout:
			t.Fatalf("request=%v response=%v", sawRequest, sawResponse)
		}
	}
}
