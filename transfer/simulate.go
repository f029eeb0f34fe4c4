package transfer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/flowdrop/flowdrop-go/store"
	"github.com/flowdrop/flowdrop-go/types"
)

// Simulator advances one file's progress from 0 to 100 over a randomized
// step schedule, persisting each tick before reporting it.
type Simulator struct {
	Files        *store.FileStore
	StepDelayMin time.Duration
	StepDelayMax time.Duration
}

// NewSimulator builds a simulator over the given file store with the default
// 100-300ms inter-step jitter.
func NewSimulator(files *store.FileStore) *Simulator {
	return &Simulator{
		Files:        files,
		StepDelayMin: 100 * time.Millisecond,
		StepDelayMax: 300 * time.Millisecond,
	}
}

// Simulate runs the upload loop for fileID. onProgress (optional) receives
// each persisted progress value and the speed of that tick, so observers can
// mirror both without re-reading the store. The record must exist for the
// whole run; if it vanishes mid-flight the next store write fails NotFound
// and the run stops there, leaving other simulations untouched.
func (s *Simulator) Simulate(ctx context.Context, fileID int, onProgress func(progress, speed float64)) error {
	uploading := types.FileStatusUploading
	start := float64(0)
	zero := float64(0)
	if _, err := s.Files.Update(ctx, fileID, types.FilePatch{Status: &uploading, Progress: &start, UploadSpeed: &zero}); err != nil {
		return fmt.Errorf("start upload %d: %w", fileID, err)
	}

	for progress := float64(0); ; progress += rand.Float64()*10 + 5 {
		current := progress
		if current > 100 {
			current = 100
		}
		speed := rand.Float64()*5 + 1 // 1-6 MB/s
		if _, err := s.Files.Update(ctx, fileID, types.FilePatch{Progress: &current, UploadSpeed: &speed}); err != nil {
			return fmt.Errorf("upload tick %d: %w", fileID, err)
		}
		if onProgress != nil {
			onProgress(current, speed)
		}
		if current >= 100 {
			break
		}
		if err := s.stepWait(ctx); err != nil {
			return err
		}
	}

	success := types.FileStatusSuccess
	full := float64(100)
	now := time.Now()
	if _, err := s.Files.Update(ctx, fileID, types.FilePatch{
		Status:      &success,
		Progress:    &full,
		UploadSpeed: &zero,
		UploadedAt:  &now,
	}); err != nil {
		return fmt.Errorf("finish upload %d: %w", fileID, err)
	}
	return nil
}

// stepWait suspends for a random interval in [StepDelayMin, StepDelayMax) to
// emulate network jitter between ticks.
func (s *Simulator) stepWait(ctx context.Context) error {
	d := s.StepDelayMin
	if span := s.StepDelayMax - s.StepDelayMin; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
