package connection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Manager errors.
var (
	ErrClosed           = errors.New("connection manager closed")
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
)

// State is the link state.
type State uint8

const (
	// StateDisconnected means no link and no redial pending.
	StateDisconnected State = iota

	// StateConnecting means an explicit Connect is in progress.
	StateConnecting

	// StateConnected means the last dial succeeded and no loss was reported.
	StateConnected

	// StateReconnecting means the link was lost and redials are running.
	StateReconnecting

	// StateClosed means Close was called.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// DialFunc establishes the link. It returns nil on success.
type DialFunc func(ctx context.Context) error

// Config configures a Manager.
type Config struct {
	// Backoff shapes the redial delays.
	Backoff BackoffConfig

	// AttemptTimeout bounds each redial (default 10s).
	AttemptTimeout time.Duration

	// Logger for operational logging. Nil discards.
	Logger *slog.Logger

	// OnStateChange is called after every transition, outside the lock.
	OnStateChange func(from, to State)
}

// Manager dials once on request and redials after a reported loss.
type Manager struct {
	dial    DialFunc
	cfg     Config
	backoff *Backoff
	logger  *slog.Logger

	mu    sync.Mutex
	state State
	// lostEarly is set when a loss is reported while a dial is running.
	lostEarly bool

	lost   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a manager and starts its redial loop.
func NewManager(dial DialFunc, cfg Config) *Manager {
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		dial:    dial,
		cfg:     cfg,
		backoff: NewBackoffWithConfig(cfg.Backoff),
		logger:  logger,
		lost:    make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	m.wg.Add(1)
	go m.redialLoop()
	return m
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connected reports whether the link is up.
func (m *Manager) Connected() bool {
	return m.State() == StateConnected
}

// Attempts returns the redial attempts since the last successful dial.
func (m *Manager) Attempts() int {
	return m.backoff.Attempts()
}

// Connect dials once. A failure leaves the manager disconnected without
// scheduling redials.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateClosed:
		m.mu.Unlock()
		return ErrClosed
	case StateConnected, StateConnecting, StateReconnecting:
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.lostEarly = false
	m.mu.Unlock()
	m.transition(StateConnecting)

	if err := m.dial(ctx); err != nil {
		m.transitionFrom(StateConnecting, StateDisconnected)
		return err
	}
	m.backoff.Reset()
	if !m.transitionFrom(StateConnecting, StateConnected) {
		return ErrClosed
	}
	m.replayEarlyLoss()
	return nil
}

// ConnectionLost reports that the link dropped. Redials start unless the
// manager is not connected.
func (m *Manager) ConnectionLost() {
	m.mu.Lock()
	if m.state == StateConnecting || m.state == StateReconnecting {
		m.lostEarly = true
	}
	m.mu.Unlock()

	if !m.transitionFrom(StateConnected, StateReconnecting) {
		return
	}
	select {
	case m.lost <- struct{}{}:
	default:
	}
}

// Close stops redialing and waits for the loop to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.transition(StateClosed)
	m.cancel()
	m.wg.Wait()
}

func (m *Manager) redialLoop() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.lost:
			m.redial()
		}
	}
}

func (m *Manager) redial() {
	for m.State() == StateReconnecting {
		delay := m.backoff.Next()
		m.logger.Info("redialing", "attempt", m.backoff.Attempts(), "delay", delay)

		select {
		case <-m.ctx.Done():
			return
		case <-time.After(delay):
		}

		m.mu.Lock()
		m.lostEarly = false
		m.mu.Unlock()

		ctx, cancel := context.WithTimeout(m.ctx, m.cfg.AttemptTimeout)
		err := m.dial(ctx)
		cancel()
		if err != nil {
			m.logger.Warn("redial failed", "attempt", m.backoff.Attempts(), "error", err)
			continue
		}
		m.backoff.Reset()
		if m.transitionFrom(StateReconnecting, StateConnected) {
			m.replayEarlyLoss()
		}
		return
	}
}

// replayEarlyLoss reports a loss that arrived before the dial finished.
func (m *Manager) replayEarlyLoss() {
	m.mu.Lock()
	lost := m.lostEarly
	m.lostEarly = false
	m.mu.Unlock()
	if lost {
		m.ConnectionLost()
	}
}

// transition moves to state unconditionally unless already closed.
func (m *Manager) transition(to State) {
	m.mu.Lock()
	from := m.state
	if from == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = to
	m.mu.Unlock()
	m.notify(from, to)
}

// transitionFrom moves to state only if the current state is from.
func (m *Manager) transitionFrom(from, to State) bool {
	m.mu.Lock()
	if m.state != from {
		m.mu.Unlock()
		return false
	}
	m.state = to
	m.mu.Unlock()
	m.notify(from, to)
	return true
}

func (m *Manager) notify(from, to State) {
	m.logger.Debug("link state", "from", from, "to", to)
	if m.cfg.OnStateChange != nil {
		m.cfg.OnStateChange(from, to)
	}
}
