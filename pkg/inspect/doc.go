// Package inspect serves a live view of a mounted tree over HTTP.
//
// Routes:
//
//	GET /          index page that follows the op stream
//	GET /healthz   liveness probe
//	GET /metrics   Prometheus metrics
//	GET /snapshot  current tree as HTML (?format=outline for a text outline)
//	GET /ops       recently recorded environment ops as JSON
//	GET /ws        websocket streaming every op as a JSON frame
//
// The tree is owned by the goroutine that turns its scheduler, so Tree reads
// it by posting work to that scheduler rather than touching it directly.
package inspect
