// Package connection keeps a link to a remote peer alive.
//
// A Manager owns one dial function. After the first successful Connect it
// waits for ConnectionLost and then redials in the background, sleeping
// between attempts according to a Backoff:
//
//	delay(n) = min(Initial * Multiplier^n, Max) + random(0, delay * Jitter)
//
// A successful dial resets the sequence. Close stops any pending redial.
package connection
