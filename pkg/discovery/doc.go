// Package discovery reconciles the controllers a gateway reports with the
// generic input devices that represent them.
//
// A Manager runs once per input tick (see Attach):
//
//  1. gateway RunFrame
//  2. gateway ConnectedControllers, up to Config.Capacity handles
//  3. a device is created, set up, resolved and started for every new handle
//  4. devices whose handle disappeared are removed
//  5. every live device is updated
//
// Creation and removal complete before any update, so a new device gets its
// first update in the tick it appears and a removed device gets none.
package discovery
