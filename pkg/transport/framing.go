package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/padbridge/padbridge-go/pkg/log"
)

// Frame layout: a big-endian uint32 payload length, then the payload.
const (
	LengthPrefixSize      = 4
	DefaultMaxMessageSize = 64 * 1024

	// MaxLogFrameDataSize caps the payload bytes copied into frame events.
	MaxLogFrameDataSize = 4096
)

// Framing errors.
var (
	ErrMessageTooLarge = errors.New("message too large")
	ErrMessageEmpty    = errors.New("message is empty")
	ErrFrameTruncated  = errors.New("frame truncated")
)

// FrameSize returns the wire size of a frame carrying payloadSize bytes.
func FrameSize(payloadSize int) int {
	return LengthPrefixSize + payloadSize
}

// frameLog emits frame events when a logger is set.
type frameLog struct {
	logger log.Logger
	connID string
}

// SetLogger sets the event sink and the connection ID stamped on events.
// A nil logger disables frame events.
func (l *frameLog) SetLogger(logger log.Logger, connID string) {
	l.logger = logger
	l.connID = connID
}

func (l *frameLog) emit(payload []byte, dir log.Direction) {
	if l.logger == nil {
		return
	}
	data := payload
	if len(data) > MaxLogFrameDataSize {
		data = data[:MaxLogFrameDataSize]
	}
	l.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: l.connID,
		Direction:    dir,
		Layer:        log.LayerTransport,
		Category:     log.CategoryFrame,
		Frame: &log.FrameEvent{
			Size:      FrameSize(len(payload)),
			Data:      data,
			Truncated: len(data) < len(payload),
		},
	})
}

// FrameWriter writes frames. WriteFrame is safe for concurrent use.
type FrameWriter struct {
	frameLog
	mu      sync.Mutex
	w       io.Writer
	maxSize uint32
}

// NewFrameWriter creates a writer with DefaultMaxMessageSize.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return NewFrameWriterWithMaxSize(w, DefaultMaxMessageSize)
}

// NewFrameWriterWithMaxSize creates a writer refusing payloads over maxSize.
func NewFrameWriterWithMaxSize(w io.Writer, maxSize uint32) *FrameWriter {
	return &FrameWriter{w: w, maxSize: maxSize}
}

// WriteFrame writes data as one frame with a single Write call.
func (fw *FrameWriter) WriteFrame(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrMessageEmpty
	case uint64(len(data)) > uint64(fw.maxSize):
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(data), fw.maxSize)
	}

	frame := make([]byte, FrameSize(len(data)))
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[LengthPrefixSize:], data)

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if _, err := fw.w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	fw.emit(data, log.DirectionOut)
	return nil
}

// FrameReader reads frames. It is not safe for concurrent use.
type FrameReader struct {
	frameLog
	r       io.Reader
	maxSize uint32
	prefix  [LengthPrefixSize]byte
}

// NewFrameReader creates a reader with DefaultMaxMessageSize.
func NewFrameReader(r io.Reader) *FrameReader {
	return NewFrameReaderWithMaxSize(r, DefaultMaxMessageSize)
}

// NewFrameReaderWithMaxSize creates a reader rejecting frames over maxSize.
func NewFrameReaderWithMaxSize(r io.Reader, maxSize uint32) *FrameReader {
	return &FrameReader{r: r, maxSize: maxSize}
}

// ReadFrame returns the next payload. A clean end of stream between frames
// returns io.EOF; a stream ending inside a frame returns ErrFrameTruncated.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	if _, err := io.ReadFull(fr.r, fr.prefix[:]); err != nil {
		switch {
		case err == io.EOF:
			return nil, io.EOF
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("read length prefix: %w", err)
	}

	n := binary.BigEndian.Uint32(fr.prefix[:])
	switch {
	case n == 0:
		return nil, ErrMessageEmpty
	case n > fr.maxSize:
		return nil, fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, n, fr.maxSize)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("read payload: %w", err)
	}
	fr.emit(payload, log.DirectionIn)
	return payload, nil
}

// Framer reads and writes frames on one stream.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a framer with DefaultMaxMessageSize.
func NewFramer(rw io.ReadWriter) *Framer {
	return NewFramerWithMaxSize(rw, DefaultMaxMessageSize)
}

// NewFramerWithMaxSize creates a framer with a shared size limit.
func NewFramerWithMaxSize(rw io.ReadWriter, maxSize uint32) *Framer {
	return &Framer{
		FrameReader: NewFrameReaderWithMaxSize(rw, maxSize),
		FrameWriter: NewFrameWriterWithMaxSize(rw, maxSize),
	}
}

// SetLogger sets the event sink on both directions.
func (f *Framer) SetLogger(logger log.Logger, connID string) {
	f.FrameReader.SetLogger(logger, connID)
	f.FrameWriter.SetLogger(logger, connID)
}
