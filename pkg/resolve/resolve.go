package resolve

import (
	"net/url"
	"strings"
)

// OverrideKey is the well-known key under which a backend override is stored.
// The same name is used for the durable storage entry, the query-string
// parameter, and the embed script's propagation parameter.
const OverrideKey = "HOSTGATE_API_URL"

// Conventional ports for the hosted UI and its backend. The forwarded-port
// rewrite and the localhost defaults are expressed in terms of these.
const (
	// DefaultBackendURL is the loopback backend used when the page is served
	// from localhost and nothing else is configured.
	DefaultBackendURL = "http://localhost:8000"

	// OrchestratorLoopback is the alternate orchestration backend on
	// localhost. It stays percent-encoded because consumers splice it into
	// the query component of another URL.
	OrchestratorLoopback = "http%3A%2F%2F127.0.0.1%3A8123"
)

// Purpose selects among backend roles when no explicit override applies.
type Purpose string

const (
	// PurposeDefault targets the standard research backend.
	PurposeDefault Purpose = ""

	// PurposeOrchestrator targets the alternate orchestration backend.
	PurposeOrchestrator Purpose = "orchestrator"
)

// Source identifies which rule produced a resolved endpoint.
type Source string

const (
	SourceNone    Source = "none"
	SourceStorage Source = "storage"
	SourceQuery   Source = "query"
	SourceBuild   Source = "build"
	SourcePurpose Source = "purpose"
	SourceDerived Source = "derived"
)

// BuildConfig holds the deployment's baked-in backend addresses. APIURL is
// checked first; LegacyAPIURL is kept for configurations written against the
// old variable name.
type BuildConfig struct {
	APIURL       string
	LegacyAPIURL string
}

// Environment is a snapshot of everything endpoint resolution may consult.
// Callers assemble it from ambient state (request host, query string, the
// override store, build configuration) so that Resolve itself stays pure.
//
// An Environment with an empty Host represents the absence of a client
// context (e.g. a server-side render path); resolution then yields the empty
// string, which is a defined placeholder and not an error.
type Environment struct {
	// Host is the host[:port] the page is served from.
	Host string

	// Query holds the page's query-string parameters.
	Query url.Values

	// Storage is a snapshot of the per-origin durable storage.
	Storage map[string]string

	// Build is the build-time backend configuration.
	Build BuildConfig
}

// Resolve selects the backend base URL for the given environment and purpose.
// See ResolveSource for the rule order.
func Resolve(env Environment, purpose Purpose) string {
	endpoint, _ := ResolveSource(env, purpose)
	return endpoint
}

// ResolveSource selects the backend base URL and reports which rule chose it.
// Rules are checked in order, first match wins:
//
//  1. stored override under OverrideKey
//  2. query-string override under OverrideKey
//  3. build config (APIURL, then LegacyAPIURL)
//  4. purpose-specific address for PurposeOrchestrator
//  5. host-derived default (localhost loopback, forwarded-port rewrite,
//     or https on the current host)
//
// Stored and query overrides win regardless of purpose, so embeds and demos
// can force a specific backend. The function is pure computation: no I/O, no
// reachability checks.
func ResolveSource(env Environment, purpose Purpose) (string, Source) {
	if env.Host == "" {
		return "", SourceNone
	}

	if v := env.Storage[OverrideKey]; v != "" {
		return v, SourceStorage
	}
	if v := env.Query.Get(OverrideKey); v != "" {
		return v, SourceQuery
	}

	if env.Build.APIURL != "" {
		return env.Build.APIURL, SourceBuild
	}
	if env.Build.LegacyAPIURL != "" {
		return env.Build.LegacyAPIURL, SourceBuild
	}

	if purpose == PurposeOrchestrator {
		if strings.Contains(env.Host, "localhost") {
			return OrchestratorLoopback, SourcePurpose
		}
		return "https://" + env.Host, SourcePurpose
	}

	if strings.Contains(env.Host, "localhost") {
		return DefaultBackendURL, SourceDerived
	}
	if rewritten, ok := rewriteForwardedPort(env.Host); ok {
		return "https://" + rewritten, SourceDerived
	}
	return "https://" + env.Host, SourceDerived
}

// Forwarded-port rewrite rule. Cloud dev containers expose each port on its
// own hostname, e.g. abc-3000.app.github.dev for the UI; the backend of the
// same workspace lives at abc-8000.app.github.dev.
const (
	forwardedDomain     = "app.github.dev"
	frontendPortSegment = "-3000."
	backendPortSegment  = "-8000."
)

// rewriteForwardedPort maps a forwarded UI hostname to its backend
// counterpart. This is a best-effort substring substitution, deliberately
// isolated so it can be replaced with structured host matching without
// touching the resolution order. Hosts that don't match the exact pattern
// are reported unchanged.
func rewriteForwardedPort(host string) (string, bool) {
	if !strings.Contains(host, forwardedDomain) || !strings.Contains(host, frontendPortSegment) {
		return host, false
	}
	return strings.Replace(host, frontendPortSegment, backendPortSegment, 1), true
}

// WebSocketBase converts a resolved http(s) endpoint into its ws(s)
// counterpart for streaming connections. Endpoints with other schemes are
// returned unchanged.
func WebSocketBase(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		return "ws://" + strings.TrimPrefix(endpoint, "http://")
	default:
		return endpoint
	}
}
