package actionsync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/actionsync"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/discovery"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/gateway/memory"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
	"github.com/padbridge/padbridge-go/pkg/log"
)

type setsLayout struct{}

func (setsLayout) Controls() []input.ControlSpec { return nil }

func (setsLayout) FinishSetup(*controller.Device) error { return nil }

func (setsLayout) Update(*controller.Device, gateway.Gateway) {}

func (setsLayout) ResolveActions(r *controller.Resolver) {
	r.ActionSet("gameplay")
	r.ActionSet("menu")
	r.ActionSet("inventory")
}

const assetYAML = `
maps:
  - name: gameplay
    actions:
      - name: fire
        type: Button
  - name: menu
    actions:
      - name: confirm
  - name: inventory
    actions:
      - name: open
`

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) { c.events = append(c.events, e) }

type fixture struct {
	api      *memory.Gateway
	mgr      *discovery.Manager
	asset    *actions.Asset
	gameplay handle.ActionSetHandle
	menu     handle.ActionSetHandle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{api: memory.New()}
	var err error
	f.gameplay, err = f.api.DefineActionSet("gameplay", 13)
	require.NoError(t, err)
	f.menu, err = f.api.DefineActionSet("menu", 14)
	require.NoError(t, err)

	reg := controller.NewRegistry()
	require.NoError(t, reg.Register(controller.Matcher{Interface: controller.InterfaceName}, func() controller.Layout {
		return setsLayout{}
	}))
	f.mgr = discovery.NewManager(f.api, input.NewSystem(), reg, discovery.DefaultConfig())

	f.asset, err = actions.ParseAsset([]byte(assetYAML))
	require.NoError(t, err)
	return f
}

func (f *fixture) connect(t *testing.T, controllers ...uint64) {
	t.Helper()
	require.NoError(t, f.api.SetControllers(controllers...))
	f.mgr.Tick()
}

func (f *fixture) enable(t *testing.T, name string) {
	t.Helper()
	m, ok := f.asset.Map(name)
	require.True(t, ok)
	m.Enable()
}

func TestEnableActivatesOnLiveDevices(t *testing.T) {
	f := newFixture(t)
	events := &captureLogger{}
	cfg := actionsync.DefaultConfig()
	cfg.EventLogger = events
	actionsync.NewBridge(f.mgr, f.asset, cfg)

	f.connect(t, 1)
	assert.Empty(t, f.api.Activations())

	f.enable(t, "gameplay")

	ctrl := handle.New[handle.Controller](1)
	assert.Equal(t, []memory.Activation{{Controller: ctrl, Set: f.gameplay}}, f.api.Activations())
	assert.Equal(t, f.gameplay, f.api.CurrentActionSet(ctrl))

	require.Len(t, events.events, 1)
	assert.Equal(t, log.CategoryActivation, events.events[0].Category)
	assert.Equal(t, "gameplay", events.events[0].Activation.SetName)
	assert.Equal(t, log.SourceSync, events.events[0].Activation.Source)
}

func TestEnableActivatesEveryDevice(t *testing.T) {
	f := newFixture(t)
	actionsync.NewBridge(f.mgr, f.asset, actionsync.DefaultConfig())
	f.connect(t, 1, 2)

	f.enable(t, "menu")
	assert.Equal(t, []memory.Activation{
		{Controller: handle.New[handle.Controller](1), Set: f.menu},
		{Controller: handle.New[handle.Controller](2), Set: f.menu},
	}, f.api.Activations())
}

func TestNoActivationWithoutDevice(t *testing.T) {
	f := newFixture(t)
	cfg := actionsync.DefaultConfig()
	cfg.ActivateOnAdd = false
	actionsync.NewBridge(f.mgr, f.asset, cfg)

	f.enable(t, "gameplay")
	f.connect(t, 1)
	assert.Empty(t, f.api.Activations())
}

func TestActivateOnAddUsesMostRecentMap(t *testing.T) {
	f := newFixture(t)
	b := actionsync.NewBridge(f.mgr, f.asset, actionsync.DefaultConfig())

	f.enable(t, "gameplay")
	f.enable(t, "menu")
	assert.Equal(t, []string{"gameplay", "menu"}, b.EnabledMaps())

	f.connect(t, 1)
	assert.Equal(t, []memory.Activation{{Controller: handle.New[handle.Controller](1), Set: f.menu}}, f.api.Activations())
}

func TestActivateOnAddSkipsUnresolvedSets(t *testing.T) {
	f := newFixture(t)
	actionsync.NewBridge(f.mgr, f.asset, actionsync.DefaultConfig())

	f.enable(t, "gameplay")
	f.enable(t, "inventory")

	f.connect(t, 1)
	assert.Equal(t, []memory.Activation{{Controller: handle.New[handle.Controller](1), Set: f.gameplay}}, f.api.Activations())
}

func TestUnknownSetNotActivated(t *testing.T) {
	f := newFixture(t)
	actionsync.NewBridge(f.mgr, f.asset, actionsync.DefaultConfig())
	f.connect(t, 1)

	f.enable(t, "inventory")
	assert.Empty(t, f.api.Activations())
}

func TestDisableDoesNotActivate(t *testing.T) {
	f := newFixture(t)
	b := actionsync.NewBridge(f.mgr, f.asset, actionsync.DefaultConfig())
	f.connect(t, 1)

	f.enable(t, "gameplay")
	f.api.ResetActivations()

	m, _ := f.asset.Map("gameplay")
	m.Disable()
	assert.Empty(t, f.api.Activations())
	assert.Empty(t, b.EnabledMaps())
}

func TestAlreadyEnabledMapsCountAsEnabled(t *testing.T) {
	f := newFixture(t)
	asset, err := actions.ParseAsset([]byte(`
maps:
  - name: gameplay
    enabled: true
`))
	require.NoError(t, err)
	b := actionsync.NewBridge(f.mgr, asset, actionsync.DefaultConfig())
	assert.Equal(t, []string{"gameplay"}, b.EnabledMaps())

	f.connect(t, 1)
	assert.Equal(t, []memory.Activation{{Controller: handle.New[handle.Controller](1), Set: f.gameplay}}, f.api.Activations())
}

func TestCloseStopsForwarding(t *testing.T) {
	f := newFixture(t)
	b := actionsync.NewBridge(f.mgr, f.asset, actionsync.DefaultConfig())
	f.connect(t, 1)

	b.Close()
	f.enable(t, "gameplay")
	f.connect(t, 1, 2)
	assert.Empty(t, f.api.Activations())
}
