package app

import (
	"context"
	"testing"
	"time"

	"github.com/hoistlabs/hostgate/pkg/log"
)

func TestLifecycle_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []State
		wantErr bool
	}{
		{
			name: "full happy path",
			path: []State{StateStarting, StateRunning, StateStopping, StateStopped},
		},
		{
			name: "crash during start and restart",
			path: []State{StateStarting, StateCrashed, StateStarting, StateRunning},
		},
		{
			name:    "cannot run without starting",
			path:    []State{StateRunning},
			wantErr: true,
		},
		{
			name:    "cannot stop a stopped gateway",
			path:    []State{StateStopping},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(log.Noop{})

			var err error
			for _, s := range tt.path {
				if err = l.TransitionTo(s, "test"); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLifecycle_CanStartCanStop(t *testing.T) {
	l := NewLifecycle(log.Noop{})

	if !l.CanStart() {
		t.Error("stopped lifecycle should be startable")
	}
	if l.CanStop() {
		t.Error("stopped lifecycle should not be stoppable")
	}

	if err := l.TransitionTo(StateStarting, "test"); err != nil {
		t.Fatal(err)
	}
	if err := l.TransitionTo(StateRunning, "test"); err != nil {
		t.Fatal(err)
	}

	if l.CanStart() {
		t.Error("running lifecycle should not be startable")
	}
	if !l.CanStop() {
		t.Error("running lifecycle should be stoppable")
	}
}

func TestLifecycle_WaitWithTimeout(t *testing.T) {
	l := NewLifecycle(log.Noop{})

	l.AddWorker()
	go func() {
		time.Sleep(10 * time.Millisecond)
		l.WorkerDone()
	}()

	if err := l.WaitWithTimeout(time.Second); err != nil {
		t.Errorf("WaitWithTimeout = %v, want nil", err)
	}

	l.AddWorker()
	defer l.WorkerDone()
	if err := l.WaitWithTimeout(20 * time.Millisecond); err == nil {
		t.Error("expected timeout error for stuck worker")
	}
}

func TestBackoff_GrowthAndReset(t *testing.T) {
	b := NewBackoff(10*time.Millisecond, 40*time.Millisecond)
	ctx := context.Background()

	if b.Current() != 10*time.Millisecond {
		t.Fatalf("Current = %v, want 10ms", b.Current())
	}

	for i := 0; i < 4; i++ {
		if err := b.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if b.Current() != 40*time.Millisecond {
		t.Errorf("Current after growth = %v, want capped 40ms", b.Current())
	}

	b.Reset()
	if b.Current() != 10*time.Millisecond {
		t.Errorf("Current after reset = %v, want 10ms", b.Current())
	}
}

func TestBackoff_ContextCancel(t *testing.T) {
	b := NewBackoff(time.Minute, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Wait(ctx); err != context.Canceled {
		t.Errorf("Wait = %v, want context.Canceled", err)
	}
}
