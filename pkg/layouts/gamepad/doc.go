// Package gamepad is the standard two-stick controller layout.
//
// The layout is generated from actions.yaml; edit that file and run
// go generate to change it.
package gamepad

//go:generate go run ../../../cmd/padbridge-gen -actions actions.yaml -type gamepad.Gamepad -vdf gamepad.vdf -out gamepad_gen.go
