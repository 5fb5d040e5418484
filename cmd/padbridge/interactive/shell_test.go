package interactive

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/padbridge/padbridge-go/internal/sim"
	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/layouts/gamepad"
)

// newTestShell returns a shell without readline over a running simulator.
func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	gw, _, err := sim.NewSimGateway(sim.DefaultSimConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	asset, err := actions.ParseAsset([]byte("maps:\n  - name: gameplay\n    actions:\n      - {name: fire}\n"))
	if err != nil {
		t.Fatal(err)
	}
	reg := controller.NewRegistry()
	if err := gamepad.Register(reg); err != nil {
		t.Fatal(err)
	}
	opts := sim.DefaultOptions()
	opts.TickInterval = 0
	rt := sim.New(gw, reg, asset, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = rt.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = rt.Close()
	})
	deadline := time.Now().Add(time.Second)
	for rt.Do(ctx, func() {}) != nil {
		if time.Now().After(deadline) {
			t.Fatal("runtime did not start")
		}
		time.Sleep(time.Millisecond)
	}

	var out bytes.Buffer
	return &Shell{rt: rt, out: &out}, &out
}

func exec(t *testing.T, s *Shell, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	if s.Exec(context.Background(), line) {
		t.Fatalf("%q asked to quit", line)
	}
	return out.String()
}

func TestShellSimulationFlow(t *testing.T) {
	s, out := newTestShell(t)

	if got := exec(t, s, out, "devices"); !strings.Contains(got, "No devices.") {
		t.Errorf("devices before tick: %q", got)
	}

	exec(t, s, out, "tick")
	got := exec(t, s, out, "devices")
	if !strings.Contains(got, "[1]") || !strings.Contains(got, "LIVE") || !strings.Contains(got, "set=-") {
		t.Errorf("devices after tick: %q", got)
	}

	exec(t, s, out, "press 1 fire")
	exec(t, s, out, "move 1 look 0.25 0.5")
	exec(t, s, out, "tick 2")
	got = exec(t, s, out, "controls 1")
	if !strings.Contains(got, "fire") || !strings.Contains(got, "true") {
		t.Errorf("controls missing pressed fire: %q", got)
	}
	if !strings.Contains(got, "{0.25 0.5}") {
		t.Errorf("controls missing look position: %q", got)
	}

	exec(t, s, out, "enable gameplay")
	if got := exec(t, s, out, "devices"); !strings.Contains(got, "set=gameplay") {
		t.Errorf("devices after enable: %q", got)
	}
	if got := exec(t, s, out, "maps"); !strings.Contains(got, "enabled") {
		t.Errorf("maps: %q", got)
	}

	exec(t, s, out, "activate 1 menu")
	if got := exec(t, s, out, "devices"); !strings.Contains(got, "set=menu") {
		t.Errorf("devices after activate: %q", got)
	}

	if got := exec(t, s, out, "connect 2 Wheel"); !strings.Contains(got, "Controller 2 connected (Wheel)") {
		t.Errorf("connect: %q", got)
	}
	exec(t, s, out, "disconnect 1")
	exec(t, s, out, "tick")
	if got := exec(t, s, out, "devices"); !strings.Contains(got, "No devices.") {
		t.Errorf("devices after disconnect: %q", got)
	}
}

func TestShellErrors(t *testing.T) {
	s, out := newTestShell(t)

	tests := []struct {
		line string
		want string
	}{
		{"bogus", "Unknown command: bogus"},
		{"press 1", "usage: press"},
		{"press x fire", "invalid controller handle"},
		{"move 1 look up", "invalid position"},
		{"tick 0", "invalid tick count"},
		{"controls 5", "no device"},
		{"enable inventory", "unknown name"},
		{"save", "no state file configured"},
	}
	for _, tt := range tests {
		if got := exec(t, s, out, tt.line); !strings.Contains(got, tt.want) {
			t.Errorf("%q: got %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestShellSaveAndQuit(t *testing.T) {
	s, out := newTestShell(t)

	saved := 0
	s.Save = func() error { saved++; return nil }
	if got := exec(t, s, out, "save"); !strings.Contains(got, "State saved.") || saved != 1 {
		t.Errorf("save: %q (saved %d)", got, saved)
	}

	s.Save = func() error { return errors.New("disk full") }
	if got := exec(t, s, out, "save"); !strings.Contains(got, "disk full") {
		t.Errorf("failed save: %q", got)
	}

	if !s.Exec(context.Background(), "quit") {
		t.Error("quit did not ask to exit")
	}
}
