// Package remote serves a gateway.Gateway to other processes and consumes
// one served elsewhere.
//
// A Server wraps any gateway (usually the one bound to the vendor runtime)
// and answers wire requests over transport connections. A Client implements
// gateway.Gateway by forwarding each call, and a Redialer wraps clients to
// survive server restarts. Runtimes announce themselves via mDNS as
// _padbridge._tcp services so clients can find them with Browse; runtimes
// with a different protocol major version are ignored.
//
// The gateway contract survives the hop: not-found lookups and transport
// failures both come back as zero handles and zero samples, and layer
// operations return gateway.ErrNotSupported.
package remote
