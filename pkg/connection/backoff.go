package connection

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Default redial timing.
const (
	DefaultInitialDelay = 500 * time.Millisecond
	DefaultMaxDelay     = 30 * time.Second
	DefaultMultiplier   = 2.0
	DefaultJitter       = 0.2
)

// BackoffConfig shapes the delay sequence between redial attempts.
type BackoffConfig struct {
	// Initial is the first delay. Zero means DefaultInitialDelay.
	Initial time.Duration

	// Max caps the delay. Zero means DefaultMaxDelay.
	Max time.Duration

	// Multiplier grows the delay after each attempt. Values <= 1 mean
	// DefaultMultiplier.
	Multiplier float64

	// Jitter adds up to this fraction of the delay at random. Zero disables
	// jitter.
	Jitter float64
}

// DefaultBackoffConfig returns the timing used by NewBackoff.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    DefaultInitialDelay,
		Max:        DefaultMaxDelay,
		Multiplier: DefaultMultiplier,
		Jitter:     DefaultJitter,
	}
}

// Backoff produces exponentially growing, jittered delays. It is safe for
// concurrent use.
type Backoff struct {
	mu       sync.Mutex
	cfg      BackoffConfig
	base     time.Duration
	attempts int
}

// NewBackoff creates a backoff with DefaultBackoffConfig.
func NewBackoff() *Backoff {
	return NewBackoffWithConfig(DefaultBackoffConfig())
}

// NewBackoffWithConfig creates a backoff, filling unset fields with defaults.
func NewBackoffWithConfig(cfg BackoffConfig) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = DefaultInitialDelay
	}
	if cfg.Max <= 0 {
		cfg.Max = DefaultMaxDelay
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = DefaultMultiplier
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}
	return &Backoff{cfg: cfg, base: cfg.Initial}
}

// Next returns the delay to wait before the next attempt and advances the
// sequence.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.base
	if b.cfg.Jitter > 0 {
		d += time.Duration(float64(d) * b.cfg.Jitter * rand.Float64())
	}

	b.attempts++
	b.base = min(time.Duration(float64(b.base)*b.cfg.Multiplier), b.cfg.Max)
	return d
}

// Base returns the next delay without jitter.
func (b *Backoff) Base() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.base
}

// Attempts returns how many delays were handed out since the last Reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Reset restarts the sequence. Call it after a successful dial.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.base = b.cfg.Initial
	b.attempts = 0
}
