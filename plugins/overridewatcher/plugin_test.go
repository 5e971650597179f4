package overridewatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hoistlabs/hostgate"
	"github.com/hoistlabs/hostgate/pkg/log"
)

type reloadRecorder struct {
	mu    sync.Mutex
	calls int
}

func (r *reloadRecorder) ReloadOverride(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return nil
}

func (r *reloadRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestPlugin_ReloadsOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.json")

	recorder := &reloadRecorder{}
	p := New(Config{DebounceDelay: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := p.Initialize(ctx, hostgate.PluginConfig{
		OverridePath: path,
		Logger:       log.Noop{},
		Overrides:    recorder,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer p.Shutdown(context.Background())

	// Give the watcher a moment to register before producing events.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"url":"https://override.example"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return recorder.count() >= 1 }) {
		t.Fatal("reload not triggered by file write")
	}
}

func TestPlugin_ReloadsOnAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.json")

	recorder := &reloadRecorder{}
	p := New(Config{DebounceDelay: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := p.Initialize(ctx, hostgate.PluginConfig{
		OverridePath: path,
		Logger:       log.Noop{},
		Overrides:    recorder,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer p.Shutdown(context.Background())

	time.Sleep(50 * time.Millisecond)

	// Same write pattern the override repository uses.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(`{"url":"https://renamed.example"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return recorder.count() >= 1 }) {
		t.Fatal("reload not triggered by rename")
	}
}

func TestPlugin_DisabledWithoutPath(t *testing.T) {
	p := New(DefaultConfig())

	err := p.Initialize(context.Background(), hostgate.PluginConfig{
		Logger: log.Noop{},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
