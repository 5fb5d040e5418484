package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/input"
)

func TestGatewayStateStore(t *testing.T) {
	t.Run("SaveAndLoadEmpty", func(t *testing.T) {
		dir := t.TempDir()
		store := NewGatewayStateStore(filepath.Join(dir, "state.json"))

		if err := store.Save(&GatewayState{}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.Version != StateVersion {
			t.Errorf("Version = %d, want %d", got.Version, StateVersion)
		}
		if got.SavedAt.IsZero() {
			t.Error("SavedAt not set")
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewGatewayStateStore(filepath.Join(dir, "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() = %v, want nil for non-existent file", got)
		}
	})

	t.Run("ControllerRoundTrip", func(t *testing.T) {
		dir := t.TempDir()
		store := NewGatewayStateStore(filepath.Join(dir, "nested", "state.json"))

		state := &GatewayState{
			SavedAt:        time.Now().Add(-time.Hour),
			DigitalActions: map[string]uint64{"fire": 11},
			AnalogActions:  map[string]uint64{"look": 12},
			ActionSets:     map[string]uint64{"gameplay": 13},
			Controllers: []ControllerState{
				{
					Handle:    1,
					Product:   "Gamepad",
					ActiveSet: 13,
					Digital:   map[uint64]gateway.DigitalActionData{11: {Pressed: true, Active: true}},
					Analog:    map[uint64]gateway.AnalogActionData{12: {Position: input.Vector2{X: 0.5, Y: -1}, Active: true}},
				},
				{Handle: 2},
			},
		}

		if err := store.Save(state); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got.Controllers) != 2 {
			t.Fatalf("Controllers = %d, want 2", len(got.Controllers))
		}
		c := got.Controllers[0]
		if c.Product != "Gamepad" || c.ActiveSet != 13 {
			t.Errorf("controller = %+v", c)
		}
		if !c.Digital[11].Pressed {
			t.Error("digital sample lost")
		}
		if c.Analog[12].Position.Y != -1 {
			t.Errorf("analog position = %+v", c.Analog[12].Position)
		}
		if got.ActionSets["gameplay"] != 13 {
			t.Errorf("ActionSets = %v", got.ActionSets)
		}
	})

	t.Run("RejectsNewerVersion", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "state.json")
		if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := NewGatewayStateStore(path).Load()
		if err == nil {
			t.Fatal("Load() should fail for newer version")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		dir := t.TempDir()
		store := NewGatewayStateStore(filepath.Join(dir, "state.json"))
		if err := store.Save(&GatewayState{}); err != nil {
			t.Fatal(err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("second Clear() error = %v", err)
		}
		got, _ := store.Load()
		if got != nil {
			t.Error("state should be gone after Clear")
		}
	})
}
