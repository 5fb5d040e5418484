// Package handle defines strongly typed opaque identifiers for objects owned
// by the controller runtime.
//
// A vendor runtime hands out 64-bit values for connected controllers, named
// actions, and named action sets. The values share one numeric space, so a
// raw uint64 makes it easy to pass an action handle where a controller
// handle was expected. Handle carries a phantom kind parameter that turns
// such mistakes into compile errors:
//
//	var c handle.ControllerHandle = handle.New[handle.Controller](1)
//	var a handle.ActionHandle = handle.New[handle.Action](11)
//	c == a // does not compile
//
// # Invalid Handles
//
// The value 0 is reserved. Lookups that find nothing return the zero
// Handle, which reports IsValid() == false. Callers treat it as "no
// mapping", never as an error.
package handle
