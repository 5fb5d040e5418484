package discovery

import (
	"log/slog"

	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/log"
)

// Config configures a Manager.
type Config struct {
	// Capacity is the connected-controller buffer size. Controllers beyond
	// it are not seen (default gateway.MaxConnectedControllers).
	Capacity int

	// Interface is the description interface of created devices
	// (default controller.InterfaceName).
	Interface string

	// DefaultProduct is used when the gateway cannot name a controller's
	// product (default "Gamepad").
	DefaultProduct string

	// Logger for operational logging. Nil discards.
	Logger *slog.Logger

	// EventLogger receives device lifecycle events (optional).
	EventLogger log.Logger

	// SessionID is stamped on captured events.
	SessionID string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:       gateway.MaxConnectedControllers,
		Interface:      controller.InterfaceName,
		DefaultProduct: "Gamepad",
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.Interface == "" {
		c.Interface = d.Interface
	}
	if c.DefaultProduct == "" {
		c.DefaultProduct = d.DefaultProduct
	}
}
