// Command padbridge runs the controller pipeline against a simulated or
// remote vendor input runtime.
//
// It supports:
//   - A simulated gateway configured from YAML, with optional state
//     persistence
//   - Serving the simulated gateway to remote clients, announced via mDNS
//   - Connecting to a remote gateway by address or by mDNS browsing, and
//     redialing it after the link drops
//   - Action map files whose enabled maps drive action set activation
//   - An event log for padbridge-log
//   - An interactive shell
//
// Usage:
//
//	padbridge [flags]
//
// Examples:
//
//	# Simulate one gamepad with the interactive shell
//	padbridge -interactive
//
//	# Serve a simulated runtime and announce it
//	padbridge -config sim.yaml -serve :47800 -advertise -name desk
//
//	# Drive a remote runtime found via mDNS and record events
//	padbridge -browse desk -actions actions.yaml -event-log session.plog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/padbridge/padbridge-go/cmd/padbridge/interactive"
	"github.com/padbridge/padbridge-go/internal/sim"
	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/layouts/gamepad"
	"github.com/padbridge/padbridge-go/pkg/log"
	"github.com/padbridge/padbridge-go/pkg/persistence"
	"github.com/padbridge/padbridge-go/pkg/remote"
	"github.com/padbridge/padbridge-go/pkg/version"
)

// Config holds the command configuration.
type Config struct {
	ConfigFile  string
	ActionsFile string
	StateFile   string

	Connect   string
	Browse    string
	Serve     string
	Advertise bool
	Name      string
	Interface string

	TickRate      int
	Capacity      int
	ActivateOnAdd bool

	LogLevel    string
	EventLog    string
	Interactive bool
	Version     bool
}

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Simulator configuration file (YAML)")
	flag.StringVar(&config.ActionsFile, "actions", "", "Action map file (YAML); overrides the config file")
	flag.StringVar(&config.StateFile, "state", "", "Simulator state file; restored at start, saved at exit")

	flag.StringVar(&config.Connect, "connect", "", "Connect to a remote gateway at host:port")
	flag.StringVar(&config.Browse, "browse", "", "Connect to the remote gateway with this mDNS name (\"*\" for any)")
	flag.StringVar(&config.Serve, "serve", "", "Serve the simulated gateway on this address (e.g. :47800)")
	flag.BoolVar(&config.Advertise, "advertise", false, "Announce the served gateway via mDNS")
	flag.StringVar(&config.Name, "name", "", "Runtime name for mDNS (default: hostname)")
	flag.StringVar(&config.Interface, "interface", "", "Network interface for mDNS (default: all)")

	flag.IntVar(&config.TickRate, "tick-rate", 60, "Ticks per second")
	flag.IntVar(&config.Capacity, "capacity", gateway.MaxConnectedControllers, "Maximum controllers discovered per tick")
	flag.BoolVar(&config.ActivateOnAdd, "activate-on-add", true, "Activate the most recently enabled map on new devices")

	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.EventLog, "event-log", "", "Write device and protocol events to this file")
	flag.BoolVar(&config.Interactive, "interactive", false, "Run the interactive shell")
	flag.BoolVar(&config.Version, "version", false, "Print the remote gateway protocol version and exit")
}

func main() {
	flag.Parse()

	if config.Version {
		fmt.Printf("padbridge protocol %s\n", version.Current)
		return
	}

	if err := validateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cancel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateConfig() error {
	remoteMode := config.Connect != "" || config.Browse != ""
	switch {
	case config.Connect != "" && config.Browse != "":
		return fmt.Errorf("-connect and -browse are exclusive")
	case remoteMode && config.Serve != "":
		return fmt.Errorf("-serve needs the simulated gateway, not a remote one")
	case remoteMode && config.StateFile != "":
		return fmt.Errorf("-state needs the simulated gateway, not a remote one")
	case config.Advertise && config.Serve == "":
		return fmt.Errorf("-advertise requires -serve")
	case config.TickRate < 1:
		return fmt.Errorf("tick rate must be positive, got %d", config.TickRate)
	case config.Capacity < 1:
		return fmt.Errorf("capacity must be positive, got %d", config.Capacity)
	}
	if _, err := parseLevel(config.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func newLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(config.LogLevel)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, cancel context.CancelFunc) error {
	logger := newLogger(os.Stderr)

	var shell *interactive.Shell
	if config.Interactive {
		var err error
		if shell, err = interactive.New(); err != nil {
			return err
		}
		// Route logs through readline so they do not break the prompt.
		logger = newLogger(shell.Stdout())
	}
	sessionID := log.NewSessionID()

	// Event sinks: the file for padbridge-log, slog at debug level.
	var sinks []log.Logger
	if config.EventLog != "" {
		fl, err := log.NewFileLogger(config.EventLog)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer fl.Close()
		sinks = append(sinks, fl)
		logger.Info("recording events", "file", config.EventLog, "session", sessionID)
	}
	if config.LogLevel == "debug" {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}
	var events log.Logger
	if len(sinks) > 0 {
		events = log.NewMultiLogger(sinks...)
	}

	simCfg := sim.DefaultSimConfig()
	if config.ConfigFile != "" {
		c, err := sim.LoadSimConfig(config.ConfigFile)
		if err != nil {
			return err
		}
		simCfg = c
	}

	asset := actions.NewAsset()
	assetPath := config.ActionsFile
	if assetPath == "" {
		assetPath = simCfg.Actions
	}
	if assetPath != "" {
		a, err := actions.LoadAsset(assetPath)
		if err != nil {
			return err
		}
		asset = a
	}

	reg := controller.NewRegistry()
	if err := gamepad.Register(reg); err != nil {
		return err
	}

	gw, store, err := openGateway(ctx, simCfg, logger, events)
	if err != nil {
		return err
	}

	opts := sim.DefaultOptions()
	opts.TickInterval = time.Second / time.Duration(config.TickRate)
	opts.Capacity = config.Capacity
	opts.ActivateOnAdd = config.ActivateOnAdd
	opts.Logger = logger
	opts.EventLogger = events
	opts.SessionID = sessionID

	rt := sim.New(gw, reg, asset, opts)
	if c, ok := gw.(io.Closer); ok {
		rt.OnClose(c)
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	save := func() error { return nil }
	if store != nil {
		simGW := rt.Simulator()
		save = func() error { return store.Save(simGW.Snapshot()) }
		defer func() {
			if err := save(); err != nil {
				logger.Warn("save state", "error", err)
			}
		}()
	}

	if config.Serve != "" {
		var adv remote.Advertiser
		if config.Advertise {
			adv = remote.NewMDNSAdvertiser(remote.AdvertiserConfig{Interface: config.Interface})
		}
		if err := rt.Serve(ctx, config.Serve, adv, remote.RuntimeInfo{Name: runtimeName()}); err != nil {
			return err
		}
	}

	if shell != nil {
		shell.Bind(rt)
		if store != nil {
			shell.Save = save
		}
	}

	logger.Info("padbridge running",
		"gateway", gatewayMode(),
		"tick_rate", config.TickRate,
		"maps", len(asset.Maps()))

	runErr := make(chan error, 1)
	go func() { runErr <- rt.Run(ctx) }()

	if shell != nil {
		go shell.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
		cancel()
	case <-ctx.Done():
	}

	<-runErr
	logger.Info("shutting down")
	return nil
}

// dialRemote connects to addr and keeps redialing it after drops.
func dialRemote(ctx context.Context, addr string, clientCfg remote.ClientConfig) (*remote.Redialer, error) {
	r := remote.NewRedialer(addr, remote.RedialConfig{Client: clientCfg})
	if err := r.Connect(ctx); err != nil {
		r.Close()
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return r, nil
}

// openGateway returns the remote client or the simulated gateway. The
// store is non-nil only for a simulated gateway with -state.
func openGateway(ctx context.Context, simCfg *sim.SimConfig, logger *slog.Logger, events log.Logger) (gateway.Gateway, *persistence.GatewayStateStore, error) {
	clientCfg := remote.ClientConfig{Logger: logger, EventLogger: events}

	switch {
	case config.Connect != "":
		r, err := dialRemote(ctx, config.Connect, clientCfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to remote gateway", "addr", config.Connect)
		return r, nil, nil

	case config.Browse != "":
		name := config.Browse
		if name == "*" {
			name = ""
		}
		browseCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		rt, err := remote.FindRuntime(browseCtx, remote.BrowseConfig{Interface: config.Interface}, name)
		if err != nil {
			return nil, nil, fmt.Errorf("browse for %q: %w", config.Browse, err)
		}
		r, err := dialRemote(ctx, rt.Address(), clientCfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to remote gateway", "name", rt.Name, "addr", rt.Address())
		return r, nil, nil
	}

	var store *persistence.GatewayStateStore
	if config.StateFile != "" {
		store = persistence.NewGatewayStateStore(config.StateFile)
	}
	gw, restored, err := sim.NewSimGateway(simCfg, store)
	if err != nil {
		return nil, nil, err
	}
	if restored {
		logger.Info("restored simulator state", "file", config.StateFile)
	}
	return gw, store, nil
}

func gatewayMode() string {
	switch {
	case config.Connect != "":
		return "remote " + config.Connect
	case config.Browse != "":
		return "remote (mDNS " + config.Browse + ")"
	}
	return "simulated"
}

func runtimeName() string {
	if config.Name != "" {
		return config.Name
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "padbridge"
	}
	host, _, _ = strings.Cut(host, ".")
	return host
}
