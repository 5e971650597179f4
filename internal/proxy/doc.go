// Package proxy relays WebSocket research streams between embedded UI
// clients and the research engine.
package proxy
