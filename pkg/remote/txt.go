package remote

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/padbridge/padbridge-go/pkg/version"
)

// Service constants for mDNS.
const (
	// ServiceType is the mDNS service type of gateway runtimes.
	ServiceType = "_padbridge._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// MaxInstanceNameLen is the DNS-SD instance label limit.
	MaxInstanceNameLen = 63
)

// TXT record keys.
const (
	TXTKeyName     = "name" // Runtime name
	TXTKeyVersion  = "ver"  // Protocol version
	TXTKeyProducts = "prod" // Comma-separated product names (optional)
	TXTKeyMaxCtrl  = "maxc" // Controller capacity (optional)
)

// TXT errors.
var (
	ErrMissingRequired  = errors.New("missing required TXT record")
	ErrInvalidTXTRecord = errors.New("invalid TXT record")
	ErrNameTooLong      = errors.New("instance name too long")
	ErrIncompatible     = errors.New("incompatible protocol version")
)

// RuntimeInfo describes an advertised gateway runtime.
type RuntimeInfo struct {
	// Name is the DNS-SD instance name.
	Name string

	// Port is the TCP port of the remote gateway server.
	Port uint16

	// Products lists controller products the runtime serves.
	Products []string

	// MaxControllers is the runtime's controller capacity (0 if unknown).
	MaxControllers int

	// Version is the advertised protocol version. EncodeTXT always sends
	// version.Current.
	Version version.Version
}

// Validate checks the instance name.
func (i *RuntimeInfo) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: empty name", ErrMissingRequired)
	}
	if len(i.Name) > MaxInstanceNameLen {
		return ErrNameTooLong
	}
	return nil
}

// EncodeTXT builds "key=value" TXT strings for info, sorted by key.
func EncodeTXT(info *RuntimeInfo) []string {
	txt := map[string]string{
		TXTKeyName:    info.Name,
		TXTKeyVersion: version.Current,
	}
	if len(info.Products) > 0 {
		txt[TXTKeyProducts] = strings.Join(info.Products, ",")
	}
	if info.MaxControllers > 0 {
		txt[TXTKeyMaxCtrl] = strconv.Itoa(info.MaxControllers)
	}

	out := make([]string, 0, len(txt))
	for k, v := range txt {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// DecodeTXT parses TXT strings into a RuntimeInfo. Port is left zero.
func DecodeTXT(records []string) (*RuntimeInfo, error) {
	txt := make(map[string]string, len(records))
	for _, r := range records {
		k, v, _ := strings.Cut(r, "=")
		if k != "" {
			txt[k] = v
		}
	}

	info := &RuntimeInfo{}
	var ok bool
	if info.Name, ok = txt[TXTKeyName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyName)
	}
	ver, ok := txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	v, err := version.Parse(ver)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidTXTRecord, TXTKeyVersion, ver)
	}
	if !version.Supports(v) {
		return nil, fmt.Errorf("%w: %s, want %s", ErrIncompatible, v, version.Current)
	}
	info.Version = v
	if p := txt[TXTKeyProducts]; p != "" {
		for _, name := range strings.Split(p, ",") {
			if name = strings.TrimSpace(name); name != "" {
				info.Products = append(info.Products, name)
			}
		}
	}
	if m, ok := txt[TXTKeyMaxCtrl]; ok {
		n, err := strconv.Atoi(m)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidTXTRecord, TXTKeyMaxCtrl, m)
		}
		info.MaxControllers = n
	}
	return info, nil
}
