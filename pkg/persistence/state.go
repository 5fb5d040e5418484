package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/padbridge/padbridge-go/pkg/gateway"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrUnsupportedVersion is returned when loading a file written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported state file version")

// GatewayState is a snapshot of an in-memory gateway.
type GatewayState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// DigitalActions maps digital action names to handle values.
	DigitalActions map[string]uint64 `json:"digital_actions,omitempty"`

	// AnalogActions maps analog action names to handle values.
	AnalogActions map[string]uint64 `json:"analog_actions,omitempty"`

	// ActionSets maps action set names to handle values.
	ActionSets map[string]uint64 `json:"action_sets,omitempty"`

	// Controllers lists connected controllers in connection order.
	Controllers []ControllerState `json:"controllers,omitempty"`
}

// ControllerState is the saved state of one controller.
type ControllerState struct {
	// Handle is the controller handle value.
	Handle uint64 `json:"handle"`

	// Product names the controller product.
	Product string `json:"product,omitempty"`

	// ActiveSet is the handle value of the active action set (0 if none).
	ActiveSet uint64 `json:"active_set,omitempty"`

	// Digital holds the latest digital samples keyed by action handle value.
	Digital map[uint64]gateway.DigitalActionData `json:"digital,omitempty"`

	// Analog holds the latest analog samples keyed by action handle value.
	Analog map[uint64]gateway.AnalogActionData `json:"analog,omitempty"`
}

// GatewayStateStore manages persistence of gateway state to a JSON file.
type GatewayStateStore struct {
	mu   sync.Mutex
	path string
}

// NewGatewayStateStore creates a new gateway state store.
func NewGatewayStateStore(path string) *GatewayStateStore {
	return &GatewayStateStore{path: path}
}

// Path returns the backing file path.
func (s *GatewayStateStore) Path() string {
	return s.path
}

// Save persists the state to disk.
func (s *GatewayStateStore) Save(state *GatewayState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *GatewayStateStore) Load() (*GatewayState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &GatewayState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, state.Version)
	}

	return state, nil
}

// Clear removes the state file.
func (s *GatewayStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
