// Package input implements the generic input-device pipeline that controller
// integrations feed into.
//
// The pipeline is deliberately small. It knows nothing about vendors,
// handles, or action sets; it only provides:
//
//   - a device registry (System.AddDevice, System.RemoveDevice)
//   - a named control tree per device (buttons, axes, sticks, 2D vectors)
//   - a state-event queue (System.QueueStateEvent)
//   - a per-tick pump (System.Update)
//
// # Update Order
//
// System.Update runs every before-update hook in registration order, then
// applies all queued state events in FIFO order and notifies event
// listeners. Integrations that poll external state register a hook, so
// state polled during a tick is visible on the controls when Update returns.
//
// # Threading
//
// A System and its devices are driven from a single update goroutine and
// are not safe for concurrent use.
package input
