package log

import "github.com/google/uuid"

// Logger receives events. Pass nil or NoopLogger to disable capture.
type Logger interface {
	// Log records an event. Implementations must be thread-safe and should
	// not block.
	Log(event Event)
}

// NoopLogger discards all events. It is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or NoopLogger if l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// NewSessionID returns a fresh identifier for Event.SessionID.
func NewSessionID() string {
	return uuid.NewString()
}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
