package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func fastBackoff() BackoffConfig {
	return BackoffConfig{Initial: time.Millisecond, Max: 5 * time.Millisecond}
}

func waitForState(t *testing.T, m *Manager, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", m.State(), want)
}

func TestBackoff(t *testing.T) {
	t.Run("Doubles", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: 100 * time.Millisecond, Max: time.Second})
		want := []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
			800 * time.Millisecond,
			time.Second,
			time.Second,
		}
		for i, w := range want {
			if got := b.Next(); got != w {
				t.Errorf("attempt %d: delay = %v, want %v", i, got, w)
			}
		}
		if b.Attempts() != len(want) {
			t.Errorf("Attempts() = %d, want %d", b.Attempts(), len(want))
		}
	})

	t.Run("JitterBounds", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Max: time.Second, Jitter: 0.5})
		for i := 0; i < 50; i++ {
			d := b.Next()
			if d < time.Second || d > 1500*time.Millisecond {
				t.Fatalf("delay %v outside [1s, 1.5s]", d)
			}
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: 10 * time.Millisecond})
		b.Next()
		b.Next()
		b.Reset()
		if b.Base() != 10*time.Millisecond {
			t.Errorf("Base() = %v after Reset", b.Base())
		}
		if b.Attempts() != 0 {
			t.Errorf("Attempts() = %d after Reset", b.Attempts())
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Multiplier: 0.5, Jitter: -1})
		if b.cfg.Initial != DefaultInitialDelay || b.cfg.Max != DefaultMaxDelay {
			t.Errorf("delays = %v/%v", b.cfg.Initial, b.cfg.Max)
		}
		if b.cfg.Multiplier != DefaultMultiplier {
			t.Errorf("Multiplier = %v", b.cfg.Multiplier)
		}
		if b.cfg.Jitter != 0 {
			t.Errorf("Jitter = %v", b.cfg.Jitter)
		}
	})
}

func TestManagerConnect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var dials atomic.Int32
		m := NewManager(func(context.Context) error {
			dials.Add(1)
			return nil
		}, Config{})
		defer m.Close()

		if m.State() != StateDisconnected {
			t.Fatalf("initial state = %v", m.State())
		}
		if err := m.Connect(context.Background()); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		if !m.Connected() || dials.Load() != 1 {
			t.Errorf("connected = %v, dials = %d", m.Connected(), dials.Load())
		}
		if err := m.Connect(context.Background()); !errors.Is(err, ErrAlreadyConnected) {
			t.Errorf("second Connect() error = %v", err)
		}
	})

	t.Run("Failure", func(t *testing.T) {
		dialErr := errors.New("refused")
		m := NewManager(func(context.Context) error { return dialErr }, Config{Backoff: fastBackoff()})
		defer m.Close()

		if err := m.Connect(context.Background()); !errors.Is(err, dialErr) {
			t.Fatalf("Connect() error = %v", err)
		}
		if m.State() != StateDisconnected {
			t.Errorf("state = %v", m.State())
		}
		m.ConnectionLost()
		if m.State() != StateDisconnected {
			t.Errorf("loss while disconnected changed state to %v", m.State())
		}
	})

	t.Run("Closed", func(t *testing.T) {
		m := NewManager(func(context.Context) error { return nil }, Config{})
		m.Close()
		m.Close()
		if err := m.Connect(context.Background()); !errors.Is(err, ErrClosed) {
			t.Errorf("Connect() after Close error = %v", err)
		}
	})
}

func TestManagerRedial(t *testing.T) {
	var dials atomic.Int32
	var mu sync.Mutex
	var transitions [][2]State

	m := NewManager(func(context.Context) error {
		// First dial succeeds, then two redials fail before one succeeds.
		switch dials.Add(1) {
		case 2, 3:
			return errors.New("refused")
		}
		return nil
	}, Config{
		Backoff: fastBackoff(),
		OnStateChange: func(from, to State) {
			mu.Lock()
			transitions = append(transitions, [2]State{from, to})
			mu.Unlock()
		},
	})
	defer m.Close()

	if err := m.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	m.ConnectionLost()
	waitForState(t, m, StateConnected)

	if got := dials.Load(); got != 4 {
		t.Errorf("dials = %d, want 4", got)
	}
	if m.Attempts() != 0 {
		t.Errorf("Attempts() = %d after reconnect", m.Attempts())
	}

	mu.Lock()
	defer mu.Unlock()
	want := [][2]State{
		{StateDisconnected, StateConnecting},
		{StateConnecting, StateConnected},
		{StateConnected, StateReconnecting},
		{StateReconnecting, StateConnected},
	}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, transitions[i], want[i])
		}
	}
}

func TestManagerCloseStopsRedial(t *testing.T) {
	var dials atomic.Int32
	m := NewManager(func(context.Context) error {
		if dials.Add(1) == 1 {
			return nil
		}
		return errors.New("refused")
	}, Config{Backoff: BackoffConfig{Initial: 20 * time.Millisecond, Max: 20 * time.Millisecond}})

	if err := m.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	m.ConnectionLost()
	if m.State() != StateReconnecting {
		t.Fatalf("state = %v", m.State())
	}
	m.Close()
	if m.State() != StateClosed {
		t.Errorf("state = %v after Close", m.State())
	}

	after := dials.Load()
	time.Sleep(60 * time.Millisecond)
	if dials.Load() != after {
		t.Error("redial continued after Close")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "DISCONNECTED"},
		{StateConnecting, "CONNECTING"},
		{StateConnected, "CONNECTED"},
		{StateReconnecting, "RECONNECTING"},
		{StateClosed, "CLOSED"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
