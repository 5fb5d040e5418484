// Package controller binds vendor controller handles to generic input
// devices.
//
// A Device moves through Created, ActionsResolved, Live and Removed. The
// per-product behavior lives in a Layout: FinishSetup binds typed controls,
// ResolveActions looks up every vendor handle the layout needs (once per
// device lifetime), and Update polls the gateway and queues a state event.
//
// Layouts are chosen through a Registry keyed on the input description's
// interface and product.
package controller
