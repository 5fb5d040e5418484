package controller

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/padbridge/padbridge-go/pkg/input"
)

// InterfaceName is the input interface tag of devices created for vendor
// controllers.
const InterfaceName = "PadBridge"

// Registry errors.
var (
	ErrInvalidMatcher   = errors.New("matcher has no interface")
	ErrDuplicateMatcher = errors.New("matcher already registered")
)

// Matcher selects devices by description. An empty Product matches every
// product of the interface.
type Matcher struct {
	Interface string
	Product   string
}

// String returns "<interface>/<product>" with "*" for an empty product.
func (m Matcher) String() string {
	p := m.Product
	if p == "" {
		p = "*"
	}
	return m.Interface + "/" + p
}

// Registry maps device descriptions to layout factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[Matcher]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Matcher]Factory)}
}

// Register adds a factory for m.
func (r *Registry) Register(m Matcher, f Factory) error {
	if m.Interface == "" {
		return ErrInvalidMatcher
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[m]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMatcher, m)
	}
	r.entries[m] = f
	return nil
}

// Lookup returns the factory for desc. An exact product match wins over the
// interface wildcard.
func (r *Registry) Lookup(desc input.Description) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.entries[Matcher{Interface: desc.Interface, Product: desc.Product}]; ok {
		return f, true
	}
	f, ok := r.entries[Matcher{Interface: desc.Interface}]
	return f, ok
}

// Matchers returns the registered matchers sorted by interface and product.
func (r *Registry) Matchers() []Matcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Matcher, 0, len(r.entries))
	for m := range r.entries {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Interface != out[j].Interface {
			return out[i].Interface < out[j].Interface
		}
		return out[i].Product < out[j].Product
	})
	return out
}
