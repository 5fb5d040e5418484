package scenario

import (
	"fmt"
	"log/slog"

	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/actionsync"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/discovery"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/gateway/memory"
	"github.com/padbridge/padbridge-go/pkg/input"
	"gopkg.in/yaml.v3"
)

// countingLayout wraps a layout and counts lifecycle calls.
type countingLayout struct {
	controller.Layout
	resolves int
	updates  int
}

func (c *countingLayout) ResolveActions(r *controller.Resolver) {
	c.resolves++
	c.Layout.ResolveActions(r)
}

func (c *countingLayout) Update(d *controller.Device, api gateway.Gateway) {
	c.updates++
	c.Layout.Update(d, api)
}

// countingRegistry returns a registry whose factories wrap every layout of
// base in a countingLayout.
func countingRegistry(base *controller.Registry) (*controller.Registry, error) {
	reg := controller.NewRegistry()
	for _, m := range base.Matchers() {
		f, _ := base.Lookup(input.Description{Interface: m.Interface, Product: m.Product})
		if err := reg.Register(m, func() controller.Layout {
			return &countingLayout{Layout: f()}
		}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// env is the system under test for one scenario.
type env struct {
	api    *memory.Gateway
	sys    *input.System
	mgr    *discovery.Manager
	asset  *actions.Asset
	bridge *actionsync.Bridge
}

func newEnv(sc *Scenario, layouts *controller.Registry, logger *slog.Logger) (*env, error) {
	api := memory.New()
	for name, v := range sc.Setup.DigitalActions {
		if _, err := api.DefineDigitalAction(name, v); err != nil {
			return nil, fmt.Errorf("digital action %s: %w", name, err)
		}
	}
	for name, v := range sc.Setup.AnalogActions {
		if _, err := api.DefineAnalogAction(name, v); err != nil {
			return nil, fmt.Errorf("analog action %s: %w", name, err)
		}
	}
	for name, v := range sc.Setup.ActionSets {
		if _, err := api.DefineActionSet(name, v); err != nil {
			return nil, fmt.Errorf("action set %s: %w", name, err)
		}
	}

	asset := actions.NewAsset()
	if !sc.Setup.Asset.IsZero() {
		data, err := yaml.Marshal(&sc.Setup.Asset)
		if err != nil {
			return nil, fmt.Errorf("asset: %w", err)
		}
		if asset, err = actions.ParseAsset(data); err != nil {
			return nil, err
		}
	}

	reg, err := countingRegistry(layouts)
	if err != nil {
		return nil, err
	}

	sys := input.NewSystem()
	cfg := discovery.DefaultConfig()
	if sc.Setup.Capacity > 0 {
		cfg.Capacity = sc.Setup.Capacity
	}
	cfg.Logger = logger
	mgr := discovery.NewManager(api, sys, reg, cfg)
	mgr.Attach()

	bcfg := actionsync.DefaultConfig()
	if sc.Setup.ActivateOnAdd != nil {
		bcfg.ActivateOnAdd = *sc.Setup.ActivateOnAdd
	}
	bcfg.Logger = logger

	return &env{
		api:    api,
		sys:    sys,
		mgr:    mgr,
		asset:  asset,
		bridge: actionsync.NewBridge(mgr, asset, bcfg),
	}, nil
}

func (e *env) close() {
	e.bridge.Close()
	e.mgr.Close()
}

// setName returns the name a set handle was declared under.
func (e *env) setName(v uint64) string {
	_, _, sets := e.api.ActionNames()
	for name, h := range sets {
		if h.Value() == v {
			return name
		}
	}
	return ""
}
