// Package http contains the HTTP handlers for the analysis API, the
// health and version endpoints, and the embedded frontend. Handlers
// translate service-layer errors into RFC 7807 problem responses via
// the shared error handler.
package http
