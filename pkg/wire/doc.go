// Package wire defines the CBOR wire format of the remote gateway protocol.
//
// A remote gateway exposes the vendor runtime's capability interface to
// another process. Every gateway operation is one Request/Response pair;
// messages use CBOR (RFC 8949) with integer keys and travel as
// length-prefixed frames.
//
// # Message Types
//
//   - Request: caller to runtime, one Method plus a typed payload
//   - Response: runtime to caller, a Status plus a typed payload
//
// Not-found conditions are not errors on the wire: lookups answer
// StatusSuccess with a zero handle or zero sample, exactly as the local
// gateway would.
package wire
