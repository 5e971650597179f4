// Package metrics defines the gateway's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Resolutions counts endpoint resolutions by the rule that decided them.
	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostgate_resolutions_total",
			Help: "Total endpoint resolutions, labeled by deciding source",
		},
		[]string{"source"},
	)

	// EmbedServes counts renders of the embed loader script.
	EmbedServes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hostgate_embed_serves_total",
			Help: "Total embed loader script responses",
		},
	)

	// SessionsActive tracks currently open proxied WebSocket sessions.
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostgate_ws_sessions_active",
			Help: "Currently open proxied WebSocket sessions",
		},
	)

	// SessionsTotal counts all proxied WebSocket sessions ever opened.
	SessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hostgate_ws_sessions_total",
			Help: "Total proxied WebSocket sessions",
		},
	)

	// UpstreamDialFailures counts failed dials to the research engine.
	UpstreamDialFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hostgate_upstream_dial_failures_total",
			Help: "Failed WebSocket dials to the research engine",
		},
	)
)

func init() {
	prometheus.MustRegister(
		Resolutions,
		EmbedServes,
		SessionsActive,
		SessionsTotal,
		UpstreamDialFailures,
	)
}
