package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/hoistlabs/hostgate/internal/domain"
)

// OverrideFile implements ports.OverrideRepository using a JSON file.
type OverrideFile struct {
	mu   sync.Mutex
	path string
}

// NewOverrideFile creates a repository backed by the given file path.
func NewOverrideFile(path string) *OverrideFile {
	return &OverrideFile{path: path}
}

// Load retrieves the stored override from disk.
// Returns an empty override and nil error if the file does not exist.
func (r *OverrideFile) Load(ctx context.Context) (domain.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Override{}, nil
		}
		return domain.Override{}, err
	}

	var override domain.Override
	if err := json.Unmarshal(data, &override); err != nil {
		return domain.Override{}, err
	}
	return override, nil
}

// Save persists the override atomically via a temp file and rename.
func (r *OverrideFile) Save(ctx context.Context, override domain.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(override, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// Clear removes the override file. A missing file is not an error.
func (r *OverrideFile) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the file backing the repository.
func (r *OverrideFile) Path() string {
	return r.path
}
