package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/actionsync"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/discovery"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/gateway/memory"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
	"github.com/padbridge/padbridge-go/pkg/log"
	"github.com/padbridge/padbridge-go/pkg/remote"
)

// Runtime errors.
var (
	ErrNotSimulated = errors.New("gateway is not simulated")
	ErrNotRunning   = errors.New("runtime is not running")
	ErrNoDevice     = errors.New("no device for controller")
	ErrUnknownName  = errors.New("unknown name")
)

// DefaultTickInterval is roughly one frame at 60 Hz.
const DefaultTickInterval = 16 * time.Millisecond

// Options configures a Runtime.
type Options struct {
	// TickInterval between automatic ticks. Zero or negative disables the
	// ticker; ticks then only happen through Tick.
	TickInterval time.Duration

	// Capacity is the discovery buffer size.
	Capacity int

	// ActivateOnAdd activates the most recently enabled map on new devices.
	ActivateOnAdd bool

	// Logger for operational logging. Nil discards.
	Logger *slog.Logger

	// EventLogger receives device and activation events (optional).
	EventLogger log.Logger

	// SessionID tags captured events.
	SessionID string
}

// DefaultOptions returns options for a 60 Hz runtime.
func DefaultOptions() Options {
	return Options{
		TickInterval:  DefaultTickInterval,
		Capacity:      gateway.MaxConnectedControllers,
		ActivateOnAdd: true,
	}
}

// DeviceInfo summarizes a live device.
type DeviceInfo struct {
	Handle     uint64
	Name       string
	Product    string
	State      string
	CurrentSet string
}

// Runtime owns the core pipeline. Run drives it from one goroutine; other
// goroutines reach it through Do.
type Runtime struct {
	gw     gateway.Gateway
	reg    *controller.Registry
	sys    *input.System
	mgr    *discovery.Manager
	asset  *actions.Asset
	bridge *actionsync.Bridge

	opts   Options
	logger *slog.Logger
	events log.Logger

	cmds chan func()

	mu         sync.Mutex
	running    bool
	server     *remote.Server
	advertiser remote.Advertiser
	closers    []io.Closer
}

// New builds the pipeline on gw. Layouts are looked up in reg and the
// bridge follows asset.
func New(gw gateway.Gateway, reg *controller.Registry, asset *actions.Asset, opts Options) *Runtime {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	events := log.OrNoop(opts.EventLogger)

	sys := input.NewSystem()
	dcfg := discovery.DefaultConfig()
	if opts.Capacity > 0 {
		dcfg.Capacity = opts.Capacity
	}
	dcfg.Logger = logger
	dcfg.EventLogger = events
	dcfg.SessionID = opts.SessionID
	mgr := discovery.NewManager(gw, sys, reg, dcfg)
	mgr.Attach()

	bcfg := actionsync.DefaultConfig()
	bcfg.ActivateOnAdd = opts.ActivateOnAdd
	bcfg.Logger = logger
	bcfg.EventLogger = events
	bcfg.SessionID = opts.SessionID

	return &Runtime{
		gw:     gw,
		reg:    reg,
		sys:    sys,
		mgr:    mgr,
		asset:  asset,
		bridge: actionsync.NewBridge(mgr, asset, bcfg),
		opts:   opts,
		logger: logger,
		events: events,
		cmds:   make(chan func()),
	}
}

// Gateway returns the gateway the runtime polls.
func (r *Runtime) Gateway() gateway.Gateway { return r.gw }

// Manager returns the discovery manager.
func (r *Runtime) Manager() *discovery.Manager { return r.mgr }

// Asset returns the action asset.
func (r *Runtime) Asset() *actions.Asset { return r.asset }

// Simulator returns the memory gateway, or nil for remote runtimes.
func (r *Runtime) Simulator() *memory.Gateway {
	sim, _ := r.gw.(*memory.Gateway)
	return sim
}

// OnClose registers c to be closed by Close, after the pipeline.
func (r *Runtime) OnClose(c io.Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, c)
}

// Serve exposes the runtime's gateway on addr and, with a non-nil
// advertiser, announces it. info.Port is filled in from the listener.
func (r *Runtime) Serve(ctx context.Context, addr string, adv remote.Advertiser, info remote.RuntimeInfo) error {
	server := remote.NewServer(r.gw, remote.ServerConfig{
		Address:     addr,
		Logger:      r.logger,
		EventLogger: r.opts.EventLogger,
	})
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("serve gateway: %w", err)
	}
	r.logger.Info("serving gateway", "addr", server.Addr())

	r.mu.Lock()
	r.server = server
	r.mu.Unlock()

	if adv == nil {
		return nil
	}
	if tcp, ok := server.Addr().(*net.TCPAddr); ok {
		info.Port = uint16(tcp.Port)
	}
	if info.MaxControllers == 0 {
		info.MaxControllers = r.opts.Capacity
	}
	if len(info.Products) == 0 {
		info.Products = r.products()
	}
	if err := adv.Advertise(ctx, &info); err != nil {
		return fmt.Errorf("advertise: %w", err)
	}
	r.logger.Info("advertising gateway", "name", info.Name, "port", info.Port)

	r.mu.Lock()
	r.advertiser = adv
	r.mu.Unlock()
	return nil
}

// products returns the sorted products with a registered layout.
func (r *Runtime) products() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.reg.Matchers() {
		if m.Product != "" && !seen[m.Product] {
			seen[m.Product] = true
			out = append(out, m.Product)
		}
	}
	sort.Strings(out)
	return out
}

// ServerAddr returns the remote listen address, or nil when not serving.
func (r *Runtime) ServerAddr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.server == nil {
		return nil
	}
	return r.server.Addr()
}

// Run ticks the pipeline and executes Do requests until ctx ends.
func (r *Runtime) Run(ctx context.Context) error {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	var tick <-chan time.Time
	if r.opts.TickInterval > 0 {
		ticker := time.NewTicker(r.opts.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			if err := r.Tick(); err != nil {
				r.logger.Warn("tick failed", "error", err)
			}
		case fn := <-r.cmds:
			fn()
		}
	}
}

// Do runs fn on the Run goroutine and waits for it.
func (r *Runtime) Do(ctx context.Context, fn func()) error {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	done := make(chan struct{})
	select {
	case r.cmds <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick runs one input system update, which runs discovery first.
func (r *Runtime) Tick() error {
	return r.sys.Update()
}

// Ticks returns the number of discovery passes so far.
func (r *Runtime) Ticks() uint64 {
	return r.mgr.Ticks()
}

// Devices summarizes the live devices in discovery order.
func (r *Runtime) Devices() []DeviceInfo {
	var out []DeviceInfo
	for _, d := range r.mgr.Devices() {
		in := d.Input()
		info := DeviceInfo{
			Handle:  d.Handle().Value(),
			Name:    in.Name(),
			Product: in.Description().Product,
			State:   d.State().String(),
		}
		current := d.CurrentActionSet()
		for _, name := range d.ActionSetNames() {
			if h, _ := d.ActionSet(name); h.IsValid() && h == current {
				info.CurrentSet = name
			}
		}
		out = append(out, info)
	}
	return out
}

// Controls returns the current values of a device's controls by name.
func (r *Runtime) Controls(ctrl uint64) (map[string]any, error) {
	d, ok := r.mgr.Device(handle.New[handle.Controller](ctrl))
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrNoDevice, ctrl)
	}
	out := make(map[string]any)
	for _, c := range d.Input().Controls() {
		out[c.Name()] = c.Value()
	}
	return out, nil
}

// Connect connects a simulated controller.
func (r *Runtime) Connect(ctrl uint64, product string) error {
	sim := r.Simulator()
	if sim == nil {
		return ErrNotSimulated
	}
	_, err := sim.AddController(ctrl, product)
	return err
}

// Disconnect disconnects a simulated controller.
func (r *Runtime) Disconnect(ctrl uint64) error {
	sim := r.Simulator()
	if sim == nil {
		return ErrNotSimulated
	}
	if !sim.RemoveController(ctrl) {
		return fmt.Errorf("%w: controller %d", ErrUnknownName, ctrl)
	}
	return nil
}

// Press injects a digital sample for a simulated controller.
func (r *Runtime) Press(ctrl uint64, action string, pressed bool) error {
	sim := r.Simulator()
	if sim == nil {
		return ErrNotSimulated
	}
	a := sim.DigitalActionHandle(action)
	if !a.IsValid() {
		return fmt.Errorf("%w: digital action %q", ErrUnknownName, action)
	}
	return sim.SetDigital(handle.New[handle.Controller](ctrl), a,
		gateway.DigitalActionData{Pressed: pressed, Active: true})
}

// Move injects an analog sample for a simulated controller.
func (r *Runtime) Move(ctrl uint64, action string, x, y float32) error {
	sim := r.Simulator()
	if sim == nil {
		return ErrNotSimulated
	}
	a := sim.AnalogActionHandle(action)
	if !a.IsValid() {
		return fmt.Errorf("%w: analog action %q", ErrUnknownName, action)
	}
	return sim.SetAnalog(handle.New[handle.Controller](ctrl), a,
		gateway.AnalogActionData{Position: input.Vector2{X: x, Y: y}, Active: true})
}

// Activate activates a set the device resolved.
func (r *Runtime) Activate(ctrl uint64, set string) error {
	d, ok := r.mgr.Device(handle.New[handle.Controller](ctrl))
	if !ok {
		return fmt.Errorf("%w %d", ErrNoDevice, ctrl)
	}
	h, ok := d.ActionSet(set)
	if !ok {
		return fmt.Errorf("%w: set %q", ErrUnknownName, set)
	}
	if err := d.ActivateActionSet(h); err != nil {
		return err
	}
	r.events.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  r.opts.SessionID,
		Layer:      log.LayerDevice,
		Category:   log.CategoryActivation,
		Controller: ctrl,
		Activation: &log.ActivationEvent{Set: h.Value(), SetName: set, Source: log.SourceManual},
	})
	return nil
}

// SetMapEnabled enables or disables an action map.
func (r *Runtime) SetMapEnabled(name string, enabled bool) error {
	m, ok := r.asset.Map(name)
	if !ok {
		return fmt.Errorf("%w: map %q", ErrUnknownName, name)
	}
	if enabled {
		m.Enable()
	} else {
		m.Disable()
	}
	return nil
}

// Close withdraws the announcement, stops serving, tears down the
// pipeline and closes registered closers.
func (r *Runtime) Close() error {
	r.mu.Lock()
	adv, server, closers := r.advertiser, r.server, r.closers
	r.advertiser, r.server, r.closers = nil, nil, nil
	r.mu.Unlock()

	var errs []error
	if adv != nil {
		errs = append(errs, adv.Stop())
	}
	if server != nil {
		errs = append(errs, server.Stop())
	}
	r.bridge.Close()
	r.mgr.Close()
	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
