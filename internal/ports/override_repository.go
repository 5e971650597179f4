package ports

import (
	"context"

	"github.com/hoistlabs/hostgate/internal/domain"
)

// OverrideRepository persists the stored backend override.
// Implementations must write atomically; the override outlives gateway
// restarts and is cleared only by an explicit Clear.
type OverrideRepository interface {
	// Load retrieves the stored override.
	// Returns an empty override and nil error when none is set.
	Load(ctx context.Context) (domain.Override, error)

	// Save persists the override atomically.
	Save(ctx context.Context, override domain.Override) error

	// Clear removes the stored override. Clearing an absent override is
	// not an error.
	Clear(ctx context.Context) error

	// Path returns the location backing the repository, for watchers.
	Path() string
}
