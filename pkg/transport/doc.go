// Package transport carries remote gateway messages over TCP.
//
// Messages are framed with a 4-byte big-endian length prefix:
//
//	┌────────────────────────────────┐
//	│      CBOR Messages             │
//	├────────────────────────────────┤
//	│   Length-Prefix Framing (4B)   │
//	├────────────────────────────────┤
//	│           TCP                  │
//	└────────────────────────────────┘
//
// Remote gateways run on the same host or a trusted LAN next to the vendor
// runtime, so connections are not encrypted.
package transport
