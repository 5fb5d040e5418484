package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
	"github.com/padbridge/padbridge-go/pkg/layouts/gamepad"
)

// Runner errors.
var (
	ErrUnknownLayout = errors.New("unknown layout set")
	ErrNoDevice      = errors.New("no live device for controller")
	ErrUnknownName   = errors.New("unknown name")
	ErrExpectation   = errors.New("expectation failed")
)

// LayoutSet registers the layouts a scenario can use.
type LayoutSet func(reg *controller.Registry) error

type stepHandler func(e *env, st *Step) error

// Runner runs scenarios.
type Runner struct {
	layouts  map[string]LayoutSet
	handlers map[string]stepHandler
	logger   *slog.Logger
}

// NewRunner creates a runner with the "gamepad" layout set. logger may be
// nil.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Runner{
		layouts: map[string]LayoutSet{"gamepad": gamepad.Register},
		logger:  logger,
	}
	r.handlers = map[string]stepHandler{
		"connect":    stepConnect,
		"disconnect": stepDisconnect,
		"digital":    stepDigital,
		"analog":     stepAnalog,
		"tick":       stepTick,
		"enable":     stepEnable,
		"disable":    stepDisable,
		"activate":   stepActivate,
	}
	return r
}

// RegisterLayouts adds a named layout set.
func (r *Runner) RegisterLayouts(name string, set LayoutSet) {
	r.layouts[name] = set
}

// Run executes a scenario. It stops at the first failing step.
func (r *Runner) Run(sc *Scenario) *Result {
	start := time.Now()
	result := &Result{Scenario: sc}
	defer func() { result.Duration = time.Since(start) }()

	name := sc.Setup.Layout
	if name == "" {
		name = "gamepad"
	}
	set, ok := r.layouts[name]
	if !ok {
		result.Error = fmt.Errorf("%w: %q", ErrUnknownLayout, name)
		return result
	}
	reg := controller.NewRegistry()
	if err := set(reg); err != nil {
		result.Error = fmt.Errorf("register layouts: %w", err)
		return result
	}

	e, err := newEnv(sc, reg, r.logger)
	if err != nil {
		result.Error = fmt.Errorf("setup: %w", err)
		return result
	}
	defer e.close()

	for i := range sc.Steps {
		st := &sc.Steps[i]
		sr := &StepResult{Step: st, StepIndex: i}
		result.StepResults = append(result.StepResults, sr)

		if err := r.handlers[st.Action](e, st); err != nil {
			sr.Error = fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
			result.Error = sr.Error
			return result
		}
		if st.Expect != nil {
			sr.Failures = check(e, st.Expect)
		}
		if len(sr.Failures) > 0 {
			sr.Error = fmt.Errorf("step %d (%s): %w: %v", i+1, st.Action, ErrExpectation, sr.Failures)
			result.Error = sr.Error
			return result
		}
		sr.Passed = true
	}
	result.Passed = true
	return result
}

func ctrl(v uint64) handle.ControllerHandle {
	return handle.New[handle.Controller](v)
}

func active(st *Step) bool {
	return st.Active == nil || *st.Active
}

func stepConnect(e *env, st *Step) error {
	product := st.Product
	if product == "" {
		product = gamepad.Product
	}
	_, err := e.api.AddController(st.Controller, product)
	return err
}

func stepDisconnect(e *env, st *Step) error {
	if !e.api.RemoveController(st.Controller) {
		return fmt.Errorf("%w: controller %d not connected", ErrUnknownName, st.Controller)
	}
	return nil
}

func stepDigital(e *env, st *Step) error {
	a := e.api.DigitalActionHandle(st.Name)
	if !a.IsValid() {
		return fmt.Errorf("%w: digital action %q", ErrUnknownName, st.Name)
	}
	return e.api.SetDigital(ctrl(st.Controller), a, gateway.DigitalActionData{Pressed: st.Pressed, Active: active(st)})
}

func stepAnalog(e *env, st *Step) error {
	a := e.api.AnalogActionHandle(st.Name)
	if !a.IsValid() {
		return fmt.Errorf("%w: analog action %q", ErrUnknownName, st.Name)
	}
	return e.api.SetAnalog(ctrl(st.Controller), a, gateway.AnalogActionData{
		Position: input.Vector2{X: st.X, Y: st.Y},
		Active:   active(st),
	})
}

func stepTick(e *env, st *Step) error {
	n := max(st.Count, 1)
	for range n {
		if err := e.sys.Update(); err != nil {
			return err
		}
	}
	return nil
}

func stepEnable(e *env, st *Step) error {
	m, ok := e.asset.Map(st.Name)
	if !ok {
		return fmt.Errorf("%w: map %q", ErrUnknownName, st.Name)
	}
	m.Enable()
	return nil
}

func stepDisable(e *env, st *Step) error {
	m, ok := e.asset.Map(st.Name)
	if !ok {
		return fmt.Errorf("%w: map %q", ErrUnknownName, st.Name)
	}
	m.Disable()
	return nil
}

func stepActivate(e *env, st *Step) error {
	d, ok := e.mgr.Device(ctrl(st.Controller))
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoDevice, st.Controller)
	}
	set, ok := d.ActionSet(st.Name)
	if !ok {
		return fmt.Errorf("%w: set %q not resolved by device", ErrUnknownName, st.Name)
	}
	return d.ActivateActionSet(set)
}

// check returns a message per unmet expectation.
func check(e *env, x *Expect) []string {
	var fails []string
	failf := func(format string, args ...any) {
		fails = append(fails, fmt.Sprintf(format, args...))
	}

	if x.Devices != nil {
		var got []uint64
		for _, d := range e.mgr.Devices() {
			got = append(got, d.Handle().Value())
		}
		if !equalUints(got, *x.Devices) {
			failf("devices = %v, want %v", got, *x.Devices)
		}
	}

	for _, c := range x.Controls {
		d, ok := e.mgr.Device(ctrl(c.Controller))
		if !ok {
			failf("controls: no device for controller %d", c.Controller)
			continue
		}
		control, ok := d.Input().Control(c.Control)
		if !ok {
			failf("controls: controller %d has no control %q", c.Controller, c.Control)
			continue
		}
		checkControl(control, c, failf)
	}

	for v, want := range x.CurrentSet {
		got := e.setName(e.api.CurrentActionSet(ctrl(v)).Value())
		if got != want {
			failf("current set of %d = %q, want %q", v, got, want)
		}
	}

	if x.Activations != nil {
		got := e.api.Activations()
		want := *x.Activations
		match := len(got) == len(want)
		for i := 0; match && i < len(got); i++ {
			match = got[i].Controller.Value() == want[i].Controller && e.setName(got[i].Set.Value()) == want[i].Set
		}
		if !match {
			var desc []ActivationExpect
			for _, a := range got {
				desc = append(desc, ActivationExpect{Controller: a.Controller.Value(), Set: e.setName(a.Set.Value())})
			}
			failf("activations = %v, want %v", desc, want)
		}
	}

	for v, want := range x.Resolves {
		if got := layoutCounts(e, v).resolves; got != want {
			failf("resolves of %d = %d, want %d", v, got, want)
		}
	}
	for v, want := range x.Updates {
		if got := layoutCounts(e, v).updates; got != want {
			failf("updates of %d = %d, want %d", v, got, want)
		}
	}
	for v, want := range x.State {
		got := controller.StateRemoved.String()
		if d, ok := e.mgr.Device(ctrl(v)); ok {
			got = d.State().String()
		}
		if got != want {
			failf("state of %d = %s, want %s", v, got, want)
		}
	}
	return fails
}

func layoutCounts(e *env, v uint64) countingLayout {
	d, ok := e.mgr.Device(ctrl(v))
	if !ok {
		return countingLayout{}
	}
	if c, ok := d.Layout().(*countingLayout); ok {
		return *c
	}
	return countingLayout{}
}

const epsilon = 1e-6

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func checkControl(control input.Control, c ControlExpect, failf func(string, ...any)) {
	if c.Pressed != nil {
		b, ok := control.(*input.ButtonControl)
		if !ok {
			failf("control %q is not a button", c.Control)
		} else if b.IsPressed() != *c.Pressed {
			failf("control %q pressed = %v, want %v", c.Control, b.IsPressed(), *c.Pressed)
		}
	}
	if c.Value != nil {
		a, ok := control.(*input.AxisControl)
		if !ok {
			failf("control %q is not an axis", c.Control)
		} else if !near(a.ReadValue(), *c.Value) {
			failf("control %q value = %v, want %v", c.Control, a.ReadValue(), *c.Value)
		}
	}
	if c.Position != nil {
		var p input.Vector2
		switch v := control.(type) {
		case *input.StickControl:
			p = v.ReadValue()
		case *input.Vector2Control:
			p = v.ReadValue()
		default:
			failf("control %q has no position", c.Control)
			return
		}
		if !near(p.X, c.Position[0]) || !near(p.Y, c.Position[1]) {
			failf("control %q position = %v, want %v", c.Control, p, *c.Position)
		}
	}
}

func equalUints(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
