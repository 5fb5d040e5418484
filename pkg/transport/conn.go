package transport

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/padbridge/padbridge-go/pkg/log"
)

// Connection errors.
var (
	ErrConnectionClosed = errors.New("connection closed")
)

// DefaultPort is the default remote gateway port.
const DefaultPort = 47800

// Conn is a framed connection. Writes are safe for concurrent use; reads
// must come from one goroutine.
type Conn struct {
	id     string
	conn   net.Conn
	framer *Framer
	logger log.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(c net.Conn, maxSize uint32, logger log.Logger) *Conn {
	id := uuid.New().String()
	framer := NewFramerWithMaxSize(c, maxSize)
	if logger != nil {
		framer.SetLogger(logger, id)
	}
	return &Conn{
		id:     id,
		conn:   c,
		framer: framer,
		logger: logger,
		closed: make(chan struct{}),
	}
}

// ID returns the unique connection identifier.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// LocalAddr returns the local address.
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Send writes one frame.
func (c *Conn) Send(data []byte) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}
	return c.framer.WriteFrame(data)
}

// Receive reads one frame. A zero timeout waits forever.
func (c *Conn) Receive(timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
		defer c.conn.SetReadDeadline(time.Time{})
	}
	data, err := c.framer.ReadFrame()
	if err != nil {
		select {
		case <-c.closed:
			return nil, ErrConnectionClosed
		default:
		}
		return nil, err
	}
	return data, nil
}

// Close closes the connection. Repeated calls return nil.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when Close was called.
func (c *Conn) Done() <-chan struct{} {
	return c.closed
}

func (c *Conn) logError(err error, context string) {
	if c.logger == nil {
		return
	}
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Layer:        log.LayerTransport,
		Category:     log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: err.Error(),
			Context: context,
		},
	})
}
