package actions

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/padbridge/padbridge-go/pkg/input"
)

// Asset is an ordered collection of action maps.
type Asset struct {
	maps      []*Map
	listeners subscribers
}

// NewAsset creates an empty asset.
func NewAsset() *Asset {
	return &Asset{}
}

// AddMap adds m to the asset. A map can belong to one asset only.
func (a *Asset) AddMap(m *Map) error {
	if m.name == "" {
		return ErrUnnamedMap
	}
	if _, exists := a.Map(m.name); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMap, m.name)
	}
	m.asset = a
	a.maps = append(a.maps, m)
	return nil
}

// Map returns the named map.
func (a *Asset) Map(name string) (*Map, bool) {
	for _, m := range a.maps {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// Maps returns the maps in declaration order.
func (a *Asset) Maps() []*Map {
	out := make([]*Map, len(a.maps))
	copy(out, a.maps)
	return out
}

// Subscribe registers fn for transitions of every map in the asset,
// including maps added later.
func (a *Asset) Subscribe(fn Listener) (cancel func()) {
	return a.listeners.add(fn)
}

// assetFile is the YAML representation of an Asset.
type assetFile struct {
	Maps []mapFile `yaml:"maps"`
}

type mapFile struct {
	Name    string       `yaml:"name"`
	Enabled bool         `yaml:"enabled,omitempty"`
	Actions []actionFile `yaml:"actions"`
}

type actionFile struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Binding string `yaml:"binding,omitempty"`
}

// ParseAsset parses a YAML asset. Maps marked enabled are enabled after all
// maps were added, so subscribers registered later do not see them.
func ParseAsset(data []byte) (*Asset, error) {
	var f assetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse asset: %w", err)
	}

	asset := NewAsset()
	var enable []*Map
	for _, mf := range f.Maps {
		m := NewMap(strings.TrimSpace(mf.Name))
		for _, af := range mf.Actions {
			kind := input.KindButton
			if af.Type != "" {
				k, err := input.ParseControlKind(af.Type)
				if err != nil {
					return nil, fmt.Errorf("map %s action %s: %w", m.name, af.Name, err)
				}
				kind = k
			}
			if _, err := m.AddAction(strings.TrimSpace(af.Name), kind, af.Binding); err != nil {
				return nil, err
			}
		}
		if err := asset.AddMap(m); err != nil {
			return nil, err
		}
		if mf.Enabled {
			enable = append(enable, m)
		}
	}
	for _, m := range enable {
		m.Enable()
	}
	return asset, nil
}

// LoadAsset reads and parses a YAML asset file.
func LoadAsset(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	return ParseAsset(data)
}

// MarshalYAML encodes the asset in the format ParseAsset reads.
func (a *Asset) MarshalYAML() (any, error) {
	f := assetFile{}
	for _, m := range a.maps {
		mf := mapFile{Name: m.name, Enabled: m.enabled}
		for _, act := range m.actions {
			mf.Actions = append(mf.Actions, actionFile{
				Name:    act.Name,
				Type:    act.ExpectedControl.String(),
				Binding: act.Binding,
			})
		}
		f.Maps = append(f.Maps, mf)
	}
	return f, nil
}
