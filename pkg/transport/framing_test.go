package transport

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/padbridge/padbridge-go/pkg/log"
)

type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(ev log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureLogger) snapshot() []log.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]log.Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf)
	r := NewFrameReader(&buf)

	for _, msg := range [][]byte{{0x01}, []byte("hello"), bytes.Repeat([]byte{0xaa}, 1000)} {
		if err := w.WriteFrame(msg); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame failed: %v", err)
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("got %d bytes, want %d", len(got), len(msg))
		}
	}
}

func TestFrameLengthPrefixIsBigEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFrameWriter(&buf).WriteFrame([]byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	want := []byte{0, 0, 0, 3, 1, 2, 3}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %x, want %x", buf.Bytes(), want)
	}
}

func TestWriteFrameErrors(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriterWithMaxSize(&buf, 4)

	if err := w.WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("empty: got %v", err)
	}
	if err := w.WriteFrame([]byte("12345")); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("too large: got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}
}

func TestReadFrameErrors(t *testing.T) {
	tooLarge := make([]byte, 4)
	binary.BigEndian.PutUint32(tooLarge, DefaultMaxMessageSize+1)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"eof", nil, io.EOF},
		{"short prefix", []byte{0, 0}, ErrFrameTruncated},
		{"zero length", []byte{0, 0, 0, 0}, ErrMessageEmpty},
		{"too large", tooLarge, ErrMessageTooLarge},
		{"short payload", []byte{0, 0, 0, 5, 1, 2}, ErrFrameTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrameReader(bytes.NewReader(tt.data)).ReadFrame()
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFramerLogsTruncatedFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := &captureLogger{}
	f := NewFramer(&buf)
	f.SetLogger(logger, "conn-1")

	big := bytes.Repeat([]byte{1}, MaxLogFrameDataSize+10)
	if err := f.WriteFrame(big); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if _, err := f.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	events := logger.snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	out, in := events[0], events[1]
	if out.Direction != log.DirectionOut || in.Direction != log.DirectionIn {
		t.Errorf("directions: %s, %s", out.Direction, in.Direction)
	}
	if out.Category != log.CategoryFrame || out.ConnectionID != "conn-1" {
		t.Errorf("event: %+v", out)
	}
	if !out.Frame.Truncated || len(out.Frame.Data) != MaxLogFrameDataSize {
		t.Errorf("frame data not truncated: %d bytes", len(out.Frame.Data))
	}
	if out.Frame.Size != FrameSize(len(big)) {
		t.Errorf("frame size: got %d, want %d", out.Frame.Size, FrameSize(len(big)))
	}
}
