package remote

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/enbility/zeroconf/v3"
)

// ErrNotFound is returned by FindRuntime when browsing ends without a match.
var ErrNotFound = errors.New("runtime not found")

// Runtime is a discovered gateway runtime.
type Runtime struct {
	RuntimeInfo

	// Instance is the DNS-SD instance name.
	Instance string

	// Host is the advertised host name.
	Host string

	// Addresses lists IPv4 addresses, then IPv6 addresses.
	Addresses []string
}

// Address returns the first address joined with the port, or "" if the
// runtime has no address.
func (r *Runtime) Address() string {
	if len(r.Addresses) == 0 {
		return ""
	}
	return net.JoinHostPort(r.Addresses[0], strconv.Itoa(int(r.Port)))
}

// BrowseConfig configures Browse.
type BrowseConfig struct {
	// Interface restricts browsing to one network interface.
	Interface string
}

// Browse searches for runtimes until ctx ends. Each instance is sent once,
// with the addresses of its first announcement; a removed instance is sent
// again if it reappears. The channel is closed when ctx ends.
func Browse(ctx context.Context, config BrowseConfig) (<-chan *Runtime, error) {
	out := make(chan *Runtime)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	var opts []zeroconf.ClientOption
	if ifaces := interfaces(config.Interface); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}

	go forward(ctx, entries, removed, out, entryToRuntime)

	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// forward converts browse results into runtimes on out until entries is
// closed or ctx ends, then closes out. An instance is sent again only after
// it was removed.
func forward(ctx context.Context, entries, removed <-chan *zeroconf.ServiceEntry, out chan<- *Runtime, convert func(*zeroconf.ServiceEntry) *Runtime) {
	defer close(out)

	seen := make(map[string]bool)
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return
			}
			rt := convert(entry)
			if rt == nil || seen[rt.Instance] {
				continue
			}
			seen[rt.Instance] = true
			select {
			case out <- rt:
			case <-ctx.Done():
				return
			}

		case entry, ok := <-removed:
			if !ok {
				// A nil channel never receives.
				removed = nil
				continue
			}
			delete(seen, entry.Instance)

		case <-ctx.Done():
			return
		}
	}
}

// FindRuntime browses until a runtime with the given name appears. An
// empty name matches the first runtime found.
func FindRuntime(ctx context.Context, config BrowseConfig, name string) (*Runtime, error) {
	results, err := Browse(ctx, config)
	if err != nil {
		return nil, err
	}
	for {
		select {
		case rt, ok := <-results:
			if !ok {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return nil, ErrNotFound
			}
			if name == "" || rt.Name == name {
				return rt, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func entryToRuntime(entry *zeroconf.ServiceEntry) *Runtime {
	info, err := DecodeTXT(entry.Text)
	if err != nil {
		return nil
	}
	info.Port = uint16(entry.Port)

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Runtime{
		RuntimeInfo: *info,
		Instance:    entry.Instance,
		Host:        entry.HostName,
		Addresses:   addrs,
	}
}
