package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowdrop/flowdrop-go/store"
	"github.com/flowdrop/flowdrop-go/types"
)

func newFastSimulator(files *store.FileStore) *Simulator {
	s := NewSimulator(files)
	s.StepDelayMin = 0
	s.StepDelayMax = 0
	return s
}

func TestSimulateReachesSuccess(t *testing.T) {
	files := store.NewFileStore(nil, store.Latency{})
	ctx := context.Background()
	rec, _ := files.Create(ctx, types.FileCandidate{Name: "clip.gif", Size: 1 << 20, Type: "image/gif"})

	sim := newFastSimulator(files)
	var ticks []float64
	var speeds []float64
	if err := sim.Simulate(ctx, rec.ID, func(p, s float64) {
		ticks = append(ticks, p)
		speeds = append(speeds, s)
	}); err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if len(ticks) == 0 {
		t.Fatal("expected progress callbacks")
	}
	for i, s := range speeds {
		if s < 1 || s >= 6 {
			t.Errorf("tick %d speed out of bounds: %v", i, s)
		}
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] < ticks[i-1] {
			t.Fatalf("progress went backwards: %v -> %v", ticks[i-1], ticks[i])
		}
	}
	if last := ticks[len(ticks)-1]; last != 100 {
		t.Errorf("expected final callback at exactly 100, got %v", last)
	}

	final, err := files.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if final.Status != types.FileStatusSuccess {
		t.Errorf("expected success status, got %s", final.Status)
	}
	if final.Progress != 100 {
		t.Errorf("expected progress 100, got %v", final.Progress)
	}
	if final.UploadSpeed != 0 {
		t.Errorf("expected idle speed after completion, got %v", final.UploadSpeed)
	}
}

func TestSimulateStepBounds(t *testing.T) {
	files := store.NewFileStore(nil, store.Latency{})
	ctx := context.Background()
	rec, _ := files.Create(ctx, types.FileCandidate{Name: "doc.pdf", Size: 2048, Type: "application/pdf"})

	sim := newFastSimulator(files)
	var ticks []float64
	if err := sim.Simulate(ctx, rec.ID, func(p, _ float64) { ticks = append(ticks, p) }); err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if ticks[0] != 0 {
		t.Errorf("expected first tick at 0, got %v", ticks[0])
	}
	for i := 1; i < len(ticks); i++ {
		step := ticks[i] - ticks[i-1]
		// the final step is clamped, every other step is a uniform [5, 15) draw
		if ticks[i] != 100 && (step < 5 || step >= 15) {
			t.Errorf("step %d out of bounds: %v", i, step)
		}
	}
}

func TestSimulateRemovedMidFlight(t *testing.T) {
	files := store.NewFileStore(nil, store.Latency{})
	ctx := context.Background()
	rec, _ := files.Create(ctx, types.FileCandidate{Name: "big.webp", Size: 1 << 20, Type: "image/webp"})

	sim := newFastSimulator(files)
	removed := false
	err := sim.Simulate(ctx, rec.ID, func(p, _ float64) {
		if !removed {
			removed = true
			if err := files.Remove(ctx, rec.ID); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
		}
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after mid-flight removal, got %v", err)
	}
}

func TestSimulateMissingRecord(t *testing.T) {
	files := store.NewFileStore(nil, store.Latency{})
	sim := newFastSimulator(files)

	if err := sim.Simulate(context.Background(), 42, nil); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulateHonorsCancellation(t *testing.T) {
	files := store.NewFileStore(nil, store.Latency{})
	ctx, cancel := context.WithCancel(context.Background())
	rec, _ := files.Create(ctx, types.FileCandidate{Name: "slow.png", Size: 1 << 20, Type: "image/png"})

	sim := NewSimulator(files)
	sim.StepDelayMin = 50 * time.Millisecond
	sim.StepDelayMax = 60 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- sim.Simulate(ctx, rec.ID, nil) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("simulation did not stop after cancellation")
	}
}
