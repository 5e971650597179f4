// Package log provides the structured logging abstraction for hostgate.
//
// The Logger interface decouples the gateway and its plugins from any
// particular logging library. A zerolog-backed implementation is provided
// via New/Wrap, and Noop silences output for embedded library use.
package log
