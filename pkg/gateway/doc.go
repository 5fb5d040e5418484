// Package gateway defines the capability boundary over a vendor controller
// runtime.
//
// A Gateway enumerates connected controllers, resolves named actions and
// action sets to handles, reads per-frame action state, and switches the
// active action set of a controller.
//
// # Absence Is Not an Error
//
// Lookups never fail loudly. An unknown action or set name yields the zero
// handle; an unknown controller or action yields a zero sample. A
// controller that has not been configured in the vendor's binding UI is a
// normal steady state, so callers check IsValid() and Active instead of
// handling errors.
//
// The only error a Gateway reports is ErrNotSupported, returned by the
// action-set layer operations, which no implementation in this module
// supports yet.
//
// # Frame Ordering
//
// RunFrame advances the runtime's per-frame state. Pollers call it once per
// tick before reading any action data.
//
// # Threading
//
// Gateways are not safe for concurrent use. All calls come from the single
// update goroutine.
package gateway
