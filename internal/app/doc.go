// Package app contains the gateway's lifecycle state machine and the
// backoff used for upstream dials.
package app
