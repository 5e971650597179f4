package domain

import "errors"

// Sentinel errors for the gateway lifecycle and override handling.
var (
	// ErrAlreadyRunning is returned when Start is called on a running gateway.
	ErrAlreadyRunning = errors.New("gateway already running")

	// ErrNotRunning is returned when Stop is called on a stopped gateway.
	ErrNotRunning = errors.New("gateway not running")

	// ErrShutdownTimeout is returned when graceful shutdown exceeds its deadline.
	ErrShutdownTimeout = errors.New("shutdown timeout exceeded")

	// ErrInvalidOverride is returned for override URLs that are not absolute
	// http(s) addresses.
	ErrInvalidOverride = errors.New("override must be an absolute http(s) url")

	// ErrUpstreamUnavailable is returned when the research engine cannot be
	// dialed within the configured attempts.
	ErrUpstreamUnavailable = errors.New("upstream engine unavailable")
)
