package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/padbridge/padbridge-go/pkg/log"
)

// DialConfig configures an outgoing connection.
type DialConfig struct {
	// MaxMessageSize is the maximum message size (default: 64KB).
	MaxMessageSize uint32

	// ConnectTimeout applies when ctx has no deadline (default: 10s).
	ConnectTimeout time.Duration

	// Logger receives frame events (optional).
	Logger log.Logger
}

// Dial connects to a remote gateway server.
func Dial(ctx context.Context, address string, config DialConfig) (*Conn, error) {
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	var dialer net.Dialer
	nc, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return newConn(nc, config.MaxMessageSize, config.Logger), nil
}
