package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/padbridge/padbridge-go/pkg/input"
)

func TestMapEnableNotifiesOnTransitionOnly(t *testing.T) {
	m := NewMap("gameplay")
	var got []Change
	m.Subscribe(func(_ *Map, c Change) { got = append(got, c) })

	m.Enable()
	m.Enable()
	m.Disable()
	m.Disable()

	assert.Equal(t, []Change{Enabled, Disabled}, got)
	assert.False(t, m.Enabled())
}

func TestMapEnabledBeforeListenersRun(t *testing.T) {
	m := NewMap("gameplay")
	var sawEnabled bool
	m.Subscribe(func(m *Map, _ Change) { sawEnabled = m.Enabled() })

	m.Enable()

	assert.True(t, sawEnabled)
}

func TestSubscribeCancel(t *testing.T) {
	m := NewMap("menu")
	calls := 0
	cancel := m.Subscribe(func(*Map, Change) { calls++ })

	m.Enable()
	cancel()
	m.Disable()
	cancel()

	assert.Equal(t, 1, calls)
}

func TestSubscribeCancelDuringNotify(t *testing.T) {
	m := NewMap("menu")
	var order []string
	var cancelFirst func()
	cancelFirst = m.Subscribe(func(*Map, Change) {
		order = append(order, "first")
		cancelFirst()
	})
	m.Subscribe(func(*Map, Change) { order = append(order, "second") })

	m.Enable()
	m.Disable()

	assert.Equal(t, []string{"first", "second", "second"}, order)
}

func TestAddActionRejectsUnnamedAndDuplicates(t *testing.T) {
	m := NewMap("gameplay")
	_, err := m.AddAction("fire", input.KindButton, "")
	require.NoError(t, err)

	_, err = m.AddAction("fire", input.KindAxis, "")
	assert.ErrorIs(t, err, ErrDuplicateAction)

	_, err = m.AddAction("", input.KindButton, "")
	assert.ErrorIs(t, err, ErrUnnamedAction)

	assert.Len(t, m.Actions(), 1)
}

func TestActionIsDigital(t *testing.T) {
	assert.True(t, (&Action{ExpectedControl: input.KindButton}).IsDigital())
	assert.False(t, (&Action{ExpectedControl: input.KindStick}).IsDigital())
	assert.False(t, (&Action{ExpectedControl: input.KindAxis}).IsDigital())
}

func TestAssetSubscribeSeesAllMaps(t *testing.T) {
	a := NewAsset()
	gameplay := NewMap("gameplay")
	require.NoError(t, a.AddMap(gameplay))

	var got []string
	a.Subscribe(func(m *Map, c Change) { got = append(got, m.Name()+":"+c.String()) })

	menu := NewMap("menu")
	require.NoError(t, a.AddMap(menu))

	gameplay.Enable()
	menu.Enable()
	gameplay.Disable()

	assert.Equal(t, []string{"gameplay:ENABLED", "menu:ENABLED", "gameplay:DISABLED"}, got)
}

func TestAssetAddMapErrors(t *testing.T) {
	a := NewAsset()
	require.NoError(t, a.AddMap(NewMap("gameplay")))

	assert.ErrorIs(t, a.AddMap(NewMap("gameplay")), ErrDuplicateMap)
	assert.ErrorIs(t, a.AddMap(NewMap("")), ErrUnnamedMap)
}

const sampleAsset = `
maps:
  - name: gameplay
    actions:
      - name: fire
        type: Button
        binding: <Gamepad>/buttonSouth
      - name: look
        type: stick
      - name: throttle
        type: Axis
  - name: menu
    enabled: true
    actions:
      - name: confirm
`

func TestParseAsset(t *testing.T) {
	a, err := ParseAsset([]byte(sampleAsset))
	require.NoError(t, err)

	maps := a.Maps()
	require.Len(t, maps, 2)
	assert.Equal(t, "gameplay", maps[0].Name())
	assert.False(t, maps[0].Enabled())
	assert.True(t, maps[1].Enabled())

	actions := maps[0].Actions()
	require.Len(t, actions, 3)
	assert.Equal(t, "fire", actions[0].Name)
	assert.Equal(t, input.KindButton, actions[0].ExpectedControl)
	assert.Equal(t, "<Gamepad>/buttonSouth", actions[0].Binding)
	assert.Equal(t, input.KindStick, actions[1].ExpectedControl)
	assert.Equal(t, input.KindAxis, actions[2].ExpectedControl)

	confirm, ok := maps[1].Action("confirm")
	require.True(t, ok)
	assert.Equal(t, input.KindButton, confirm.ExpectedControl)
}

func TestParseAssetErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "duplicate action",
			yaml: "maps:\n  - name: m\n    actions:\n      - name: a\n      - name: a\n",
			want: ErrDuplicateAction,
		},
		{
			name: "unnamed action",
			yaml: "maps:\n  - name: m\n    actions:\n      - type: Button\n",
			want: ErrUnnamedAction,
		},
		{
			name: "unnamed map",
			yaml: "maps:\n  - actions: []\n",
			want: ErrUnnamedMap,
		},
		{
			name: "unknown control kind",
			yaml: "maps:\n  - name: m\n    actions:\n      - name: a\n        type: Wheel\n",
			want: input.ErrUnknownControlKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAsset([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarshalYAMLIsParseable(t *testing.T) {
	a, err := ParseAsset([]byte(sampleAsset))
	require.NoError(t, err)

	data, err := yaml.Marshal(a)
	require.NoError(t, err)

	b, err := ParseAsset(data)
	require.NoError(t, err)
	require.Len(t, b.Maps(), 2)
	look, ok := b.Maps()[0].Action("look")
	require.True(t, ok)
	assert.Equal(t, input.KindStick, look.ExpectedControl)
	assert.True(t, b.Maps()[1].Enabled())
}
