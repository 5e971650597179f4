// Package resolve picks the backend base URL a hosted UI should target.
//
// Deployments of the research UI run in several topologies: plain localhost
// development, containerized dev environments with forwarded ports, embedded
// iframes on third-party pages, and production behind the serving host. The
// rest of the client stays agnostic to all of this by asking Resolve for a
// single endpoint, computed from a prioritized set of sources captured in an
// Environment snapshot.
//
// Exactly one endpoint is active per page load; resolution is a pure
// function of its inputs and performs no I/O.
package resolve
