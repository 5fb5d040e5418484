// Package persistence saves and restores simulator state.
//
// The simulator's in-memory gateway (connected controllers, named actions
// and sets, the last injected samples and active sets) is written as a
// versioned JSON document so a session can be resumed after a restart.
package persistence
