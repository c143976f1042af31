// Package http provides an immutable HTTP message model: a case-insensitive
// header store, status codes, requests and responses over pkg/stream bodies,
// and the negotiation step (Response.Prepare) that turns a completed
// response into one ready for the wire.
//
// # Immutability
//
// Request and Response never change after construction. Every With* method
// returns a new value with its own header store, so values may be shared
// read-only between goroutines without locking. Body streams are shared by
// reference; reading one moves its position. Marshal and String copy
// *stream.Buffer bodies without reading them, so they are safe to call
// concurrently. Handle-backed bodies are consumed by the first call.
//
// # Wire format and AST
//
//   - Marshal/NewEncoder - status or request line, headers, blank line, body
//   - RequestToNode/ResponseToNode - conversion to shape-core AST nodes
//   - NodeToRequest/NodeToResponse/Render - the reverse direction
//
// Nothing in this package performs network I/O.
package http
