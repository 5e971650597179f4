package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hoistlabs/hostgate/internal/domain"
)

func TestOverrideFile_LoadMissing(t *testing.T) {
	repo := NewOverrideFile(filepath.Join(t.TempDir(), "override.json"))

	override, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !override.IsEmpty() {
		t.Errorf("expected empty override, got %+v", override)
	}
}

func TestOverrideFile_SaveLoadRoundTrip(t *testing.T) {
	repo := NewOverrideFile(filepath.Join(t.TempDir(), "override.json"))
	ctx := context.Background()

	want := domain.Override{
		URL:   "https://override.example",
		SetAt: time.Now().UTC().Truncate(time.Second),
		SetBy: "api",
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.URL != want.URL || got.SetBy != want.SetBy || !got.SetAt.Equal(want.SetAt) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	// No temp file should survive the atomic write.
	if _, err := os.Stat(repo.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestOverrideFile_SaveCreatesDirectory(t *testing.T) {
	repo := NewOverrideFile(filepath.Join(t.TempDir(), "nested", "dir", "override.json"))

	if err := repo.Save(context.Background(), domain.Override{URL: "https://x.example"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestOverrideFile_Clear(t *testing.T) {
	repo := NewOverrideFile(filepath.Join(t.TempDir(), "override.json"))
	ctx := context.Background()

	// Clearing an absent override is fine.
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}

	if err := repo.Save(ctx, domain.Override{URL: "https://x.example"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	override, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if !override.IsEmpty() {
		t.Errorf("expected empty override after clear, got %+v", override)
	}
}

func TestOverrideFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewOverrideFile(path).Load(context.Background()); err == nil {
		t.Error("expected error for corrupt file")
	}
}
