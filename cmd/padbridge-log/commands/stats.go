package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/padbridge/padbridge-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Controllers       map[uint64]*ControllerStats
	Connections       map[string]int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ControllerStats holds statistics for a single controller handle.
type ControllerStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Name        string
	Product     string
	Activations map[string]int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Controllers:       make(map[uint64]*ControllerStats),
		Connections:       make(map[string]int),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	if event.ConnectionID != "" {
		s.EventsByDirection[event.Direction]++
		s.Connections[event.ConnectionID]++
	}
	if event.Error != nil {
		s.Errors++
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.Controller == 0 {
		return
	}
	cs, ok := s.Controllers[event.Controller]
	if !ok {
		cs = &ControllerStats{
			FirstSeen:   event.Timestamp,
			LastSeen:    event.Timestamp,
			Activations: make(map[string]int),
		}
		s.Controllers[event.Controller] = cs
	}
	cs.Events++
	if event.Timestamp.After(cs.LastSeen) {
		cs.LastSeen = event.Timestamp
	}
	if event.Device != nil && cs.Name == "" {
		cs.Name = event.Device.Name
		cs.Product = event.Device.Product
	}
	if a := event.Activation; a != nil {
		name := a.SetName
		if name == "" {
			name = fmt.Sprintf("#%d", a.Set)
		}
		cs.Activations[name]++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== padbridge Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerDevice, log.LayerTransport, log.LayerWire} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{
		log.CategoryDevice, log.CategoryActivation, log.CategoryState,
		log.CategoryFrame, log.CategoryMessage, log.CategoryError,
	} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Connections) > 0 {
		fmt.Fprintln(w, "Events by Direction:")
		for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
			if count := stats.EventsByDirection[dir]; count > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Controllers: %d\n", len(stats.Controllers))
	handles := make([]uint64, 0, len(stats.Controllers))
	for h := range stats.Controllers {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		cs := stats.Controllers[h]
		duration := cs.LastSeen.Sub(cs.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%d] %d events, duration %s\n", h, cs.Events, duration)
		if cs.Name != "" {
			fmt.Fprintf(w, "           Device: %s (%s)\n", cs.Name, cs.Product)
		}
		if len(cs.Activations) > 0 {
			sets := make([]string, 0, len(cs.Activations))
			for name := range cs.Activations {
				sets = append(sets, name)
			}
			sort.Strings(sets)
			fmt.Fprint(w, "           Activations:")
			for _, name := range sets {
				fmt.Fprintf(w, " %s=%d", name, cs.Activations[name])
			}
			fmt.Fprintln(w)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
