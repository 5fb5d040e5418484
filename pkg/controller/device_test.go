package controller

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/gateway/memory"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
)

// buttonLayout polls one digital action into a "fire" button.
type buttonLayout struct {
	fire     *input.ButtonControl
	fireAct  handle.ActionHandle
	gameplay handle.ActionSetHandle
	setupErr error
}

func (l *buttonLayout) Controls() []input.ControlSpec {
	return []input.ControlSpec{{Name: "fire", Kind: input.KindButton}}
}

func (l *buttonLayout) FinishSetup(d *Device) error {
	if l.setupErr != nil {
		return l.setupErr
	}
	c, err := input.GetControl[*input.ButtonControl](d.Input(), "fire")
	l.fire = c
	return err
}

func (l *buttonLayout) ResolveActions(r *Resolver) {
	l.gameplay = r.ActionSet("gameplay")
	l.fireAct = r.DigitalAction("fire")
}

func (l *buttonLayout) Update(d *Device, api gateway.Gateway) {
	data := api.DigitalActionData(d.Handle(), l.fireAct)
	_ = d.QueueState(map[string]any{"fire": data.Pressed})
}

type fixture struct {
	api    *memory.Gateway
	sys    *input.System
	layout *buttonLayout
	device *Device
}

func newFixture(t *testing.T, serial string) *fixture {
	t.Helper()
	api := memory.New()
	_, err := api.DefineDigitalAction("fire", 11)
	require.NoError(t, err)
	_, err = api.DefineActionSet("gameplay", 13)
	require.NoError(t, err)
	_, err = api.AddController(1, "Gamepad")
	require.NoError(t, err)

	sys := input.NewSystem()
	layout := &buttonLayout{}
	in, err := sys.AddDevice("pad", input.Description{Interface: InterfaceName, Product: "Gamepad", Serial: serial}, layout.Controls())
	require.NoError(t, err)

	return &fixture{api: api, sys: sys, layout: layout, device: NewDevice(sys, in, api, layout)}
}

func TestDeviceLifecycle(t *testing.T) {
	f := newFixture(t, "1")
	d := f.device
	assert.Equal(t, StateCreated, d.State())

	require.NoError(t, d.Setup())
	assert.Equal(t, handle.New[handle.Controller](1), d.Handle())
	assert.NotNil(t, f.layout.fire)

	require.NoError(t, d.Resolve())
	assert.Equal(t, StateActionsResolved, d.State())
	assert.ErrorIs(t, d.Resolve(), ErrAlreadyResolved)
	assert.Equal(t, uint64(1), d.ResolveCount())

	require.NoError(t, d.Start())
	assert.Equal(t, StateLive, d.State())

	d.Update()
	d.Update()
	assert.Equal(t, uint64(2), d.UpdateCount())

	d.Remove()
	d.Update()
	assert.Equal(t, StateRemoved, d.State())
	assert.Equal(t, uint64(2), d.UpdateCount())
}

func TestDeviceSetupInvalidSerial(t *testing.T) {
	for _, serial := range []string{"", "0", "pad"} {
		f := newFixture(t, serial)
		err := f.device.Setup()
		assert.ErrorIs(t, err, ErrInvalidHandle, serial)
		assert.False(t, f.device.Handle().IsValid())
	}
}

func TestDeviceSetupLayoutError(t *testing.T) {
	f := newFixture(t, "1")
	f.layout.setupErr = input.ErrControlNotFound

	err := f.device.Setup()
	assert.ErrorIs(t, err, input.ErrControlNotFound)
}

func TestDeviceResolveBeforeSetup(t *testing.T) {
	f := newFixture(t, "1")
	assert.ErrorIs(t, f.device.Resolve(), ErrNotSetUp)
	assert.Equal(t, uint64(0), f.device.ResolveCount())
}

func TestDeviceStartRequiresResolve(t *testing.T) {
	f := newFixture(t, "1")
	require.NoError(t, f.device.Setup())
	assert.ErrorIs(t, f.device.Start(), ErrInvalidState)
}

func TestDeviceUpdateBeforeLiveDoesNothing(t *testing.T) {
	f := newFixture(t, "1")
	require.NoError(t, f.device.Setup())
	require.NoError(t, f.device.Resolve())

	f.device.Update()
	assert.Equal(t, uint64(0), f.device.UpdateCount())
}

func TestDeviceResolvedHandles(t *testing.T) {
	f := newFixture(t, "1")
	require.NoError(t, f.device.Setup())
	require.NoError(t, f.device.Resolve())

	set, ok := f.device.ActionSet("gameplay")
	assert.True(t, ok)
	assert.Equal(t, uint64(13), set.Value())

	_, ok = f.device.ActionSet("menu")
	assert.False(t, ok)

	fire, ok := f.device.Action("fire")
	assert.True(t, ok)
	assert.Equal(t, uint64(11), fire.Value())

	assert.Equal(t, []string{"gameplay"}, f.device.ActionSetNames())
}

func TestDeviceResolveUnknownNamesRecordsZero(t *testing.T) {
	f := newFixture(t, "1")
	f.api = memory.New()
	d := NewDevice(f.sys, f.device.Input(), f.api, f.layout)
	require.NoError(t, d.Setup())
	require.NoError(t, d.Resolve())

	set, ok := d.ActionSet("gameplay")
	assert.True(t, ok)
	assert.False(t, set.IsValid())
}

func TestDeviceManualActivation(t *testing.T) {
	f := newFixture(t, "1")
	d := f.device
	setA := handle.New[handle.ActionSet](13)

	assert.ErrorIs(t, d.ActivateActionSet(setA), ErrNotResolved)
	assert.Empty(t, f.api.Activations())

	require.NoError(t, d.Setup())
	require.NoError(t, d.Resolve())
	require.NoError(t, d.ActivateActionSet(setA))

	assert.Equal(t, setA, d.CurrentActionSet())
	assert.Equal(t, []memory.Activation{{Controller: d.Handle(), Set: setA}}, f.api.Activations())

	d.Remove()
	assert.ErrorIs(t, d.ActivateActionSet(setA), ErrRemoved)
	assert.Len(t, f.api.Activations(), 1)
}

func TestDevicePollingQueuesState(t *testing.T) {
	f := newFixture(t, "1")
	d := f.device
	require.NoError(t, d.Setup())
	require.NoError(t, d.Resolve())
	require.NoError(t, d.Start())

	require.NoError(t, f.api.SetDigital(d.Handle(), handle.New[handle.Action](11), gateway.DigitalActionData{Pressed: true, Active: true}))
	f.api.RunFrame()

	var events []input.StateEvent
	f.sys.OnEvent(func(ev input.StateEvent, _ *input.Device) { events = append(events, ev) })
	f.sys.OnBeforeUpdate(d.Update)
	require.NoError(t, f.sys.Update())

	require.Len(t, events, 1)
	assert.Equal(t, d.Input().ID(), events[0].DeviceID)
	assert.True(t, f.layout.fire.IsPressed())
}

func TestDeviceQueueStateLogsFailure(t *testing.T) {
	f := newFixture(t, "1")
	d := f.device
	var buf bytes.Buffer
	d.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, d.Setup())
	require.NoError(t, f.sys.RemoveDevice(d.Input()))

	err := d.QueueState(map[string]any{"fire": true})
	assert.ErrorIs(t, err, input.ErrDeviceNotFound)
	assert.Contains(t, buf.String(), "queue state")
	assert.Contains(t, buf.String(), input.ErrDeviceNotFound.Error())
}

func TestDeviceUpdateDoesNotActivate(t *testing.T) {
	f := newFixture(t, "1")
	d := f.device
	require.NoError(t, d.Setup())
	require.NoError(t, d.Resolve())
	require.NoError(t, d.Start())

	d.Update()
	d.Update()

	assert.Empty(t, f.api.Activations())
	assert.False(t, d.CurrentActionSet().IsValid())
}
