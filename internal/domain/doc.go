// Package domain holds the gateway's core value types and sentinel errors.
// It has no dependencies on infrastructure; adapters translate to and from
// these types at the edges.
package domain
