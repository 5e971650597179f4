// Package httpapi is the gateway's HTTP surface: embed loader script,
// endpoint resolution, override management, the WebSocket proxy entry
// point, health and Prometheus metrics.
package httpapi
