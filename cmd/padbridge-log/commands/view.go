// Package commands implements the padbridge-log CLI commands.
package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/padbridge/padbridge-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer      *log.Layer
	Direction  *log.Direction
	Category   *log.Category
	Controller uint64
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Layer:      f.Layer,
		Direction:  f.Direction,
		Category:   f.Category,
		Controller: f.Controller,
	}
}

// eventLabel names the payload carried by an event.
func eventLabel(event log.Event) string {
	switch {
	case event.Device != nil:
		return "Device"
	case event.Activation != nil:
		return "Activation"
	case event.State != nil:
		return "State"
	case event.Frame != nil:
		return "Frame"
	case event.Message != nil:
		return event.Message.Type.String()
	case event.Error != nil:
		return "Error"
	}
	return "Unknown"
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	// Remote traffic carries a connection and a direction; device events a
	// controller.
	var origin string
	if event.ConnectionID != "" {
		origin = fmt.Sprintf("[conn:%s] %-3s", shortenConnID(event.ConnectionID), event.Direction)
	} else {
		origin = fmt.Sprintf("[ctrl:%d]", event.Controller)
	}
	fmt.Fprintf(w, "%s %s %s %s\n", ts, origin, event.Layer, eventLabel(event))

	switch {
	case event.Device != nil:
		formatDeviceDetails(w, event.Device)
	case event.Activation != nil:
		formatActivationDetails(w, event.Activation)
	case event.State != nil:
		formatStateDetails(w, event.State)
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatDeviceDetails(w io.Writer, d *log.DeviceEvent) {
	fmt.Fprintf(w, "  Device: %s", d.Name)
	if d.Product != "" {
		fmt.Fprintf(w, " (%s)", d.Product)
	}
	fmt.Fprintln(w)
	if d.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", d.OldState, d.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", d.NewState)
	}
	if d.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", d.Reason)
	}
}

func formatActivationDetails(w io.Writer, a *log.ActivationEvent) {
	if a.SetName != "" {
		fmt.Fprintf(w, "  Set: %s (%d)\n", a.SetName, a.Set)
	} else {
		fmt.Fprintf(w, "  Set: %d\n", a.Set)
	}
	fmt.Fprintf(w, "  Source: %s\n", a.Source)
}

// formatStateDetails writes control values in name order.
func formatStateDetails(w io.Writer, s *log.StateEvent) {
	fmt.Fprintf(w, "  Device: %s\n", s.Device)
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %v\n", name, s.Values[name])
	}
}

func formatFrameDetails(w io.Writer, frame *log.FrameEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", frame.Size)
	if len(frame.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(frame.Data))
		if frame.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  MessageID: %d\n", msg.MessageID)

	switch msg.Type {
	case log.MessageTypeRequest:
		if msg.Method != nil {
			fmt.Fprintf(w, "  Method: %s\n", msg.Method)
		}
	case log.MessageTypeResponse:
		if msg.Status != nil {
			fmt.Fprintf(w, "  Status: %s (%d)\n", msg.Status, *msg.Status)
		}
		if msg.ProcessingTime != nil {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*msg.ProcessingTime))
		}
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	if l, ok := log.ParseLayer(strings.ToUpper(s)); ok {
		return l, nil
	}
	return 0, fmt.Errorf("invalid layer: %s (must be device, transport, or wire)", s)
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	if c, ok := log.ParseCategory(strings.ToUpper(s)); ok {
		return c, nil
	}
	return 0, fmt.Errorf("invalid category: %s (must be device, activation, state, frame, message, or error)", s)
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
