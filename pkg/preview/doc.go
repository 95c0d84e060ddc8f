// Package preview serves a live view of a host tree over HTTP.
//
// After every engine commit the server renders the memory host as HTML and
// pushes it to connected browsers over a WebSocket, so a running demo can be
// watched from a browser. Routes:
//
//	GET /          page that connects to /ws and swaps in each snapshot
//	GET /snapshot  current HTML of the host tree
//	GET /ws        WebSocket stream of snapshot messages
//	GET /metrics   Prometheus metrics
//	GET /healthz   liveness
package preview
