package padbridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padbridge/padbridge-go/internal/sim"
	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/connection"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/gateway/memory"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/layouts/gamepad"
	"github.com/padbridge/padbridge-go/pkg/remote"
)

const e2eAsset = `
maps:
  - name: gameplay
    actions:
      - {name: fire, type: Button}
      - {name: move, type: Stick}
  - name: menu
    actions:
      - {name: fire, type: Button}
`

func newHostGateway(t *testing.T) *memory.Gateway {
	t.Helper()
	gw, _, err := sim.NewSimGateway(sim.DefaultSimConfig(), nil)
	require.NoError(t, err)
	return gw
}

func startHost(t *testing.T, gw *memory.Gateway, addr string) *remote.Server {
	t.Helper()
	s := remote.NewServer(gw, remote.ServerConfig{Address: addr})
	require.NoError(t, s.Start(context.Background()))
	return s
}

func newClientRuntime(t *testing.T, gw *remote.Redialer) *sim.Runtime {
	t.Helper()
	reg := controller.NewRegistry()
	require.NoError(t, gamepad.Register(reg))
	asset, err := actions.ParseAsset([]byte(e2eAsset))
	require.NoError(t, err)

	opts := sim.DefaultOptions()
	opts.TickInterval = 0
	rt := sim.New(gw, reg, asset, opts)
	rt.OnClose(gw)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

// TestE2E_RemoteDiscoveryAndSync drives a runtime whose gateway lives in
// another server: discovery, polling and map-driven activation all cross
// the wire.
func TestE2E_RemoteDiscoveryAndSync(t *testing.T) {
	host := newHostGateway(t)
	s := startHost(t, host, "127.0.0.1:0")
	t.Cleanup(func() { s.Stop() })

	r := remote.NewRedialer(s.Addr().String(), remote.RedialConfig{})
	require.NoError(t, r.Connect(context.Background()))
	rt := newClientRuntime(t, r)

	require.NoError(t, rt.Tick())
	devices := rt.Devices()
	require.Len(t, devices, 1)
	assert.Equal(t, uint64(1), devices[0].Handle)
	assert.Equal(t, "LIVE", devices[0].State)

	ctrl := handle.New[handle.Controller](1)
	fire := host.DigitalActionHandle("fire")
	require.NoError(t, host.SetDigital(ctrl, fire, gateway.DigitalActionData{Pressed: true, Active: true}))
	require.NoError(t, rt.Tick())
	values, err := rt.Controls(1)
	require.NoError(t, err)
	assert.Equal(t, true, values["fire"])

	require.NoError(t, rt.SetMapEnabled("menu", true))
	assert.Equal(t, host.ActionSetHandle("menu"), host.CurrentActionSet(ctrl))
	assert.Equal(t, "menu", rt.Devices()[0].CurrentSet)
}

// TestE2E_Reconnection checks that devices vanish while the gateway server
// is down and come back, with the enabled map reapplied, once it returns.
func TestE2E_Reconnection(t *testing.T) {
	host := newHostGateway(t)
	first := startHost(t, host, "127.0.0.1:0")
	addr := first.Addr().String()

	r := remote.NewRedialer(addr, remote.RedialConfig{
		Backoff: connection.BackoffConfig{Initial: 5 * time.Millisecond, Max: 20 * time.Millisecond},
	})
	require.NoError(t, r.Connect(context.Background()))
	rt := newClientRuntime(t, r)

	require.NoError(t, rt.SetMapEnabled("gameplay", true))
	require.NoError(t, rt.Tick())
	require.Len(t, rt.Devices(), 1)
	gameplay := host.ActionSetHandle("gameplay")
	assert.Equal(t, gameplay, host.CurrentActionSet(handle.New[handle.Controller](1)))

	require.NoError(t, first.Stop())
	require.Eventually(t, func() bool {
		_ = rt.Tick()
		return len(rt.Devices()) == 0
	}, 2*time.Second, 5*time.Millisecond)

	host.ResetActivations()
	second := startHost(t, host, addr)
	t.Cleanup(func() { second.Stop() })

	require.Eventually(t, func() bool {
		_ = rt.Tick()
		return len(rt.Devices()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, connection.StateConnected, r.State())
	assert.Equal(t, []memory.Activation{{Controller: handle.New[handle.Controller](1), Set: gameplay}}, host.Activations())
}
