// Package interactive provides the interactive command-line interface
// for padbridge.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/padbridge/padbridge-go/internal/sim"
	"github.com/padbridge/padbridge-go/pkg/connection"
)

// Shell handles interactive mode for padbridge. Every command runs on the
// runtime's goroutine.
type Shell struct {
	rt  *sim.Runtime
	rl  *readline.Instance
	out io.Writer

	// Save persists simulator state (optional).
	Save func() error
}

// New creates a shell. Bind must be called before Run.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "padbridge> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{rl: rl, out: rl.Stdout()}, nil
}

// Bind sets the runtime the shell drives.
func (s *Shell) Bind(rt *sim.Runtime) {
	s.rt = rt
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("devices"),
		readline.PcItem("controls"),
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("press"),
		readline.PcItem("release"),
		readline.PcItem("move"),
		readline.PcItem("maps"),
		readline.PcItem("enable"),
		readline.PcItem("disable"),
		readline.PcItem("activate"),
		readline.PcItem("tick"),
		readline.PcItem("status"),
		readline.PcItem("save"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if s.Exec(ctx, input) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var run func(args []string) error
	switch cmd {
	case "help", "?":
		s.printHelp()
		return false
	case "quit", "exit", "q":
		return true
	case "devices", "d":
		run = s.cmdDevices
	case "controls", "c":
		run = s.cmdControls
	case "connect":
		run = s.cmdConnect
	case "disconnect":
		run = s.cmdDisconnect
	case "press":
		run = func(args []string) error { return s.cmdPress(args, true) }
	case "release":
		run = func(args []string) error { return s.cmdPress(args, false) }
	case "move":
		run = s.cmdMove
	case "maps":
		run = s.cmdMaps
	case "enable":
		run = func(args []string) error { return s.cmdEnable(args, true) }
	case "disable":
		run = func(args []string) error { return s.cmdEnable(args, false) }
	case "activate":
		run = s.cmdActivate
	case "tick", "t":
		run = s.cmdTick
	case "status":
		run = s.cmdStatus
	case "save":
		run = s.cmdSave
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
		return false
	}

	var cmdErr error
	if err := s.rt.Do(ctx, func() { cmdErr = run(args) }); err != nil {
		cmdErr = err
	}
	if cmdErr != nil {
		fmt.Fprintf(s.out, "Error: %v\n", cmdErr)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
padbridge Commands:
  Devices:
    devices                      - List live devices
    controls <ctrl>              - Show control values of a device
    activate <ctrl> <set>        - Activate an action set on a device

  Simulation:
    connect <ctrl> [product]     - Connect a controller (default product Gamepad)
    disconnect <ctrl>            - Disconnect a controller
    press <ctrl> <action>        - Press a digital action
    release <ctrl> <action>      - Release a digital action
    move <ctrl> <action> <x> [y] - Set an analog action position

  Action maps:
    maps                         - List action maps
    enable <map>                 - Enable an action map
    disable <map>                - Disable an action map

  Runtime:
    tick [n]                     - Run n ticks now (default 1)
    status                       - Show runtime status
    save                         - Save simulator state
    quit                         - Exit`)
}

func usage(format string) error {
	return fmt.Errorf("usage: %s", format)
}

func parseHandle(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid controller handle: %s", s)
	}
	return v, nil
}

func (s *Shell) cmdDevices(_ []string) error {
	devices := s.rt.Devices()
	if len(devices) == 0 {
		fmt.Fprintln(s.out, "No devices.")
		return nil
	}
	for _, d := range devices {
		set := d.CurrentSet
		if set == "" {
			set = "-"
		}
		fmt.Fprintf(s.out, "  [%d] %-16s %-10s %-8s set=%s\n", d.Handle, d.Name, d.Product, d.State, set)
	}
	return nil
}

func (s *Shell) cmdControls(args []string) error {
	if len(args) != 1 {
		return usage("controls <ctrl>")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	values, err := s.rt.Controls(h)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %-12s %v\n", name, values[name])
	}
	return nil
}

func (s *Shell) cmdConnect(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("connect <ctrl> [product]")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	product := "Gamepad"
	if len(args) == 2 {
		product = args[1]
	}
	if err := s.rt.Connect(h, product); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Controller %d connected (%s).\n", h, product)
	return nil
}

func (s *Shell) cmdDisconnect(args []string) error {
	if len(args) != 1 {
		return usage("disconnect <ctrl>")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	if err := s.rt.Disconnect(h); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Controller %d disconnected.\n", h)
	return nil
}

func (s *Shell) cmdPress(args []string, pressed bool) error {
	if len(args) != 2 {
		if pressed {
			return usage("press <ctrl> <action>")
		}
		return usage("release <ctrl> <action>")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	return s.rt.Press(h, args[1], pressed)
}

func (s *Shell) cmdMove(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return usage("move <ctrl> <action> <x> [y]")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	var pos [2]float32
	for i, a := range args[2:] {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return fmt.Errorf("invalid position: %s", a)
		}
		pos[i] = float32(f)
	}
	return s.rt.Move(h, args[1], pos[0], pos[1])
}

func (s *Shell) cmdMaps(_ []string) error {
	maps := s.rt.Asset().Maps()
	if len(maps) == 0 {
		fmt.Fprintln(s.out, "No action maps.")
		return nil
	}
	for _, m := range maps {
		state := "disabled"
		if m.Enabled() {
			state = "enabled"
		}
		fmt.Fprintf(s.out, "  %-16s %-8s %d actions\n", m.Name(), state, len(m.Actions()))
	}
	return nil
}

func (s *Shell) cmdEnable(args []string, enabled bool) error {
	if len(args) != 1 {
		if enabled {
			return usage("enable <map>")
		}
		return usage("disable <map>")
	}
	return s.rt.SetMapEnabled(args[0], enabled)
}

func (s *Shell) cmdActivate(args []string) error {
	if len(args) != 2 {
		return usage("activate <ctrl> <set>")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	return s.rt.Activate(h, args[1])
}

func (s *Shell) cmdTick(args []string) error {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid tick count: %s", args[0])
		}
		n = v
	}
	for range n {
		if err := s.rt.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) cmdStatus(_ []string) error {
	mode := "simulated"
	if s.rt.Simulator() == nil {
		mode = "remote"
	}
	fmt.Fprintf(s.out, "Gateway:  %s\n", mode)
	if l, ok := s.rt.Gateway().(interface{ State() connection.State }); ok {
		fmt.Fprintf(s.out, "Link:     %s\n", l.State())
	}
	fmt.Fprintf(s.out, "Ticks:    %d\n", s.rt.Ticks())
	fmt.Fprintf(s.out, "Devices:  %d\n", len(s.rt.Devices()))
	if addr := s.rt.ServerAddr(); addr != nil {
		fmt.Fprintf(s.out, "Serving:  %s\n", addr)
	}
	return nil
}

func (s *Shell) cmdSave(_ []string) error {
	if s.Save == nil {
		return errors.New("no state file configured (use -state)")
	}
	if err := s.Save(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "State saved.")
	return nil
}
