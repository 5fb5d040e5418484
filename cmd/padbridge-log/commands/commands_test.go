package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/padbridge/padbridge-go/pkg/log"
	"github.com/padbridge/padbridge-go/pkg/wire"
)

var t0 = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func sampleEvents() []log.Event {
	method := wire.MethodConnectedControllers
	status := wire.StatusSuccess
	took := 1500 * time.Microsecond
	return []log.Event{
		{
			Timestamp:  t0,
			SessionID:  "s1",
			Layer:      log.LayerDevice,
			Category:   log.CategoryDevice,
			Controller: 1,
			Device:     &log.DeviceEvent{Name: "Gamepad:1", Product: "Gamepad", OldState: "CREATED", NewState: "LIVE", Reason: "connected"},
		},
		{
			Timestamp:  t0.Add(time.Second),
			SessionID:  "s1",
			Layer:      log.LayerDevice,
			Category:   log.CategoryActivation,
			Controller: 1,
			Activation: &log.ActivationEvent{Set: 13, SetName: "gameplay", Source: log.SourceSync},
		},
		{
			Timestamp:  t0.Add(2 * time.Second),
			SessionID:  "s1",
			Layer:      log.LayerDevice,
			Category:   log.CategoryState,
			Controller: 1,
			State:      &log.StateEvent{Device: "Gamepad:1", Values: map[string]any{"fire": true, "throttle": 0.5}},
		},
		{
			Timestamp:    t0.Add(3 * time.Second),
			SessionID:    "s1",
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionOut,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			Message:      &log.MessageEvent{Type: log.MessageTypeRequest, MessageID: 7, Method: &method},
		},
		{
			Timestamp:    t0.Add(3 * time.Second),
			SessionID:    "s1",
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionIn,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			Message:      &log.MessageEvent{Type: log.MessageTypeResponse, MessageID: 7, Status: &status, ProcessingTime: &took},
		},
		{
			Timestamp: t0.Add(4 * time.Second),
			SessionID: "s1",
			Layer:     log.LayerTransport,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Layer: log.LayerTransport, Message: "frame too large", Context: "receive"},
		},
	}
}

func writeLog(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.plog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range events {
		logger.Log(ev)
	}
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatDeviceEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])
	out := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[ctrl:1]",
		"DEVICE Device",
		"Gamepad:1 (Gamepad)",
		"CREATED -> LIVE",
		"Reason: connected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatStateEventSortsControls(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[2])
	out := buf.String()

	fire := strings.Index(out, "fire = true")
	throttle := strings.Index(out, "throttle = 0.5")
	if fire < 0 || throttle < 0 || fire > throttle {
		t.Errorf("expected sorted control values, got:\n%s", out)
	}
}

func TestFormatMessageEvents(t *testing.T) {
	events := sampleEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[3])
	out := buf.String()
	for _, want := range []string{"[conn:abc12345]", "OUT", "WIRE REQUEST", "Method: ConnectedControllers"} {
		if !strings.Contains(out, want) {
			t.Errorf("request output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	formatEvent(&buf, events[4])
	out = buf.String()
	for _, want := range []string{"IN", "RESPONSE", "Status: SUCCESS (0)", "Duration: 1.500ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("response output missing %q:\n%s", want, out)
		}
	}
}

func TestRunViewFilters(t *testing.T) {
	path := writeLog(t, sampleEvents())

	cat := log.CategoryActivation
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Set: gameplay (13)") || !strings.Contains(out, "Source: SYNC") {
		t.Errorf("missing activation details:\n%s", out)
	}
	if strings.Contains(out, "CREATED") {
		t.Errorf("device event not filtered out:\n%s", out)
	}
}

func TestRunStats(t *testing.T) {
	path := writeLog(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Total Events: 6",
		"Connections: 1",
		"Controllers: 1",
		"[1] 3 events",
		"Device: Gamepad:1 (Gamepad)",
		"Activations: gameplay=1",
		"Errors: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "events.jsonl")
	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not JSON: %v", err)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "events.csv")
	if err := RunExport(path, "csv", out); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want 7", len(rows))
	}
	act := rows[2]
	if act[6] != "1" || act[7] != "Activation" || act[8] != "gameplay" {
		t.Errorf("activation row = %v", act)
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeLog(t, sampleEvents())
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.plog")

	n, err := RunFilter(path, FilterOptions{Output: out, Controller: "1", Category: "state"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("filtered %d events, want 1", n)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	events, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].State == nil {
		t.Errorf("unexpected filtered events: %+v", events)
	}
}

func TestFilterOptionErrors(t *testing.T) {
	for _, opts := range []FilterOptions{
		{Controller: "pad"},
		{TimeStart: "yesterday"},
		{TimeEnd: "tomorrow"},
		{Layer: "service"},
		{Direction: "up"},
		{Category: "snapshot"},
	} {
		if _, err := opts.build(); err == nil {
			t.Errorf("build(%+v) succeeded, want error", opts)
		}
	}
}

func TestParseFlagsCaseInsensitive(t *testing.T) {
	if l, err := ParseLayerFlag("wire"); err != nil || l != log.LayerWire {
		t.Errorf("ParseLayerFlag(wire) = %v, %v", l, err)
	}
	if c, err := ParseCategoryFlag("Activation"); err != nil || c != log.CategoryActivation {
		t.Errorf("ParseCategoryFlag(Activation) = %v, %v", c, err)
	}
	if d, err := ParseDirectionFlag("OUT"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirectionFlag(OUT) = %v, %v", d, err)
	}
}
