package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second},
		{"many failures capped", 100, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 70; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, want within (0, %v]", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeHealth struct {
	healthErr error
	catsErr   error
	cats      []itemsapi.Category
	calls     atomic.Int32
}

func (f *fakeHealth) Health(context.Context) error {
	f.calls.Add(1)
	return f.healthErr
}

func (f *fakeHealth) Categories(context.Context) ([]itemsapi.Category, error) {
	return f.cats, f.catsErr
}

func TestRefresh_UpdatesStore(t *testing.T) {
	var store state.Store
	client := &fakeHealth{cats: []itemsapi.Category{{Name: "quotes", Count: 4}}}

	refresh(context.Background(), &store, client, zap.NewNop())
	snap := store.Snapshot()
	if !snap.Online || snap.TotalItems() != 4 {
		t.Fatalf("snapshot = %#v, want online with 4 items", snap)
	}

	client.healthErr = errors.New("down")
	refresh(context.Background(), &store, client, zap.NewNop())
	snap = store.Snapshot()
	if snap.Online || snap.ConsecutiveFailures != 1 || snap.TotalItems() != 4 {
		t.Fatalf("snapshot = %#v, want offline keeping categories", snap)
	}

	client.healthErr = nil
	client.catsErr = &itemsapi.HTTPError{Status: 500}
	refresh(context.Background(), &store, client, zap.NewNop())
	if got := store.Snapshot().ConsecutiveFailures; got != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", got)
	}
}

func TestStartPoller_PollsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var store state.Store
	client := &fakeHealth{}

	ctx, cancel := context.WithCancel(context.Background())
	StartPoller(ctx, &store, client, 10*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for client.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if got := client.calls.Load(); got < 3 {
		t.Fatalf("Health calls = %d, want >= 3", got)
	}
	if !store.Snapshot().Online {
		t.Fatalf("store not updated by poller")
	}
	// Let the goroutine observe cancellation before the leak check.
	time.Sleep(30 * time.Millisecond)
}
