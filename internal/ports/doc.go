// Package ports defines the interfaces that connect the gateway core to
// infrastructure adapters.
//
// The application layer depends only on these interfaces; adapters under
// internal/adapters provide the concrete implementations (file system,
// HTTP, zerolog). This keeps the core testable with in-memory fakes and
// keeps the dependency direction pointing inward.
package ports
