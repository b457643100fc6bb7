// Package api implements the HTTP REST API and WebSocket server for the
// scenario state core.
//
// This package provides:
//   - REST endpoints for scenario reads, history and transition proposals
//   - A WebSocket hub streaming committed transitions
//   - Read access to the audit trail and Prometheus metrics
//   - Request IDs, access logging with panic recovery, CORS and a body limit
//
// # Routes
//
// All routes live under /api/v1:
//
//	GET  /health
//	GET  /graph
//	GET  /scenarios?state=
//	GET  /scenarios/{name}
//	GET  /scenarios/{name}/history?limit=
//	POST /scenarios/{name}/transitions
//	GET  /audit
//	GET  /metrics
//	GET  /ws
//
// # Errors
//
// Rejected proposals map onto HTTP statuses: invalid transitions answer 422,
// stale proposals and contention answer 409, and store outages answer 503.
// The body carries the stored state so the caller can re-read and retry.
//
// # WebSocket
//
// Clients subscribe to "scenario.transitions" for every commit or to
// "scenario:{name}" for a single scenario. The hub is registered as a
// coordinator observer, so events follow the commit and never precede it.
package api
