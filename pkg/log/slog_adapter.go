package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session", event.SessionID))
	}
	if event.ConnectionID != "" {
		attrs = append(attrs,
			slog.String("conn_id", event.ConnectionID),
			slog.String("direction", event.Direction.String()),
		)
	}
	if event.Controller != 0 {
		attrs = append(attrs, slog.Uint64("controller", event.Controller))
	}

	switch {
	case event.Device != nil:
		attrs = append(attrs,
			slog.String("device", event.Device.Name),
			slog.String("new_state", event.Device.NewState),
		)
		if event.Device.OldState != "" {
			attrs = append(attrs, slog.String("old_state", event.Device.OldState))
		}
		if event.Device.Product != "" {
			attrs = append(attrs, slog.String("product", event.Device.Product))
		}
		if event.Device.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Device.Reason))
		}
	case event.Activation != nil:
		attrs = append(attrs,
			slog.Uint64("set", event.Activation.Set),
			slog.String("source", event.Activation.Source.String()),
		)
		if event.Activation.SetName != "" {
			attrs = append(attrs, slog.String("set_name", event.Activation.SetName))
		}
	case event.State != nil:
		attrs = append(attrs,
			slog.String("device", event.State.Device),
			slog.Int("values", len(event.State.Values)),
		)
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
	case event.Message != nil:
		attrs = append(attrs,
			slog.Uint64("msg_id", uint64(event.Message.MessageID)),
			slog.String("msg_type", event.Message.Type.String()),
		)
		if event.Message.Method != nil {
			attrs = append(attrs, slog.String("method", event.Message.Method.String()))
		}
		if event.Message.Status != nil {
			attrs = append(attrs, slog.String("status", event.Message.Status.String()))
		}
		if event.Message.ProcessingTime != nil {
			attrs = append(attrs, slog.Duration("processing_time", *event.Message.ProcessingTime))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "padbridge", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
