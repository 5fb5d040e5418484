// Package sim runs the padbridge runtime: a gateway (simulated or remote),
// the discovery manager, the action sync bridge and a fixed-rate tick loop.
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/padbridge/padbridge-go/pkg/gateway/memory"
	"github.com/padbridge/padbridge-go/pkg/persistence"
)

// ControllerConfig is a controller connected at startup.
type ControllerConfig struct {
	Handle  uint64 `yaml:"handle"`
	Product string `yaml:"product,omitempty"`
}

// SimConfig declares the simulated vendor runtime.
type SimConfig struct {
	// Actions is the path of the action asset (relative paths resolve
	// against the working directory).
	Actions string `yaml:"actions,omitempty"`

	DigitalActions map[string]uint64 `yaml:"digital_actions"`
	AnalogActions  map[string]uint64 `yaml:"analog_actions"`
	ActionSets     map[string]uint64 `yaml:"action_sets"`

	Controllers []ControllerConfig `yaml:"controllers,omitempty"`
}

// DefaultSimConfig declares the names the gamepad layout resolves and one
// connected gamepad.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		DigitalActions: map[string]uint64{"fire": 10, "jump": 11},
		AnalogActions:  map[string]uint64{"look": 20, "move": 21, "throttle": 22},
		ActionSets:     map[string]uint64{"gameplay": 1, "menu": 2},
		Controllers:    []ControllerConfig{{Handle: 1, Product: "Gamepad"}},
	}
}

// LoadSimConfig reads a YAML simulator configuration.
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sim config: %w", err)
	}
	var cfg SimConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse sim config: %w", err)
	}
	return &cfg, nil
}

// Apply declares the configured names and controllers on gw.
func (c *SimConfig) Apply(gw *memory.Gateway) error {
	for name, v := range c.DigitalActions {
		if _, err := gw.DefineDigitalAction(name, v); err != nil {
			return fmt.Errorf("digital action %s: %w", name, err)
		}
	}
	for name, v := range c.AnalogActions {
		if _, err := gw.DefineAnalogAction(name, v); err != nil {
			return fmt.Errorf("analog action %s: %w", name, err)
		}
	}
	for name, v := range c.ActionSets {
		if _, err := gw.DefineActionSet(name, v); err != nil {
			return fmt.Errorf("action set %s: %w", name, err)
		}
	}
	for _, cc := range c.Controllers {
		if _, err := gw.AddController(cc.Handle, cc.Product); err != nil {
			return fmt.Errorf("controller %d: %w", cc.Handle, err)
		}
	}
	return nil
}

// NewSimGateway returns a memory gateway restored from store when it holds
// a saved state, or configured from cfg otherwise. store may be nil.
func NewSimGateway(cfg *SimConfig, store *persistence.GatewayStateStore) (gw *memory.Gateway, restored bool, err error) {
	gw = memory.New()
	if store != nil {
		state, err := store.Load()
		if err != nil {
			return nil, false, fmt.Errorf("load state: %w", err)
		}
		if state != nil {
			if err := gw.Restore(state); err != nil {
				return nil, false, fmt.Errorf("restore state: %w", err)
			}
			return gw, true, nil
		}
	}
	if err := cfg.Apply(gw); err != nil {
		return nil, false, err
	}
	return gw, false, nil
}
