package transfer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flowdrop/flowdrop-go/store"
	"github.com/flowdrop/flowdrop-go/tool"
	"github.com/flowdrop/flowdrop-go/types"
)

// timeNow is swapped out in tests that pin elapsed-time calculations.
var timeNow = time.Now

// Broadcaster receives engine events for delivery to observers. Implemented by
// the API's progress hub; a nil Broadcaster drops events.
type Broadcaster interface {
	Broadcast(event *types.ProgressEvent)
}

// Engine sequences validation, record creation, simulated transfer and session
// accounting for batches of added files. All session counter mutation goes
// through SessionStore.AddCounters, so concurrently completing uploads cannot
// lose increments.
type Engine struct {
	Files    *store.FileStore
	Sessions *store.SessionStore

	validator *Validator
	simulator *Simulator
	hub       Broadcaster

	storageCapacity int64

	active   atomic.Int64
	inflight sync.WaitGroup
}

// NewEngine wires the engine over its stores. hub may be nil.
func NewEngine(files *store.FileStore, sessions *store.SessionStore, validator *Validator, simulator *Simulator, hub Broadcaster, storageCapacity int64) *Engine {
	return &Engine{
		Files:           files,
		Sessions:        sessions,
		validator:       validator,
		simulator:       simulator,
		hub:             hub,
		storageCapacity: storageCapacity,
	}
}

// AddFiles validates each candidate, creates pending records for the accepted
// ones, bumps the current session's totals and starts one simulated upload per
// accepted file. Rejections are per-file: a rejected candidate never blocks
// its siblings.
func (e *Engine) AddFiles(ctx context.Context, candidates []types.FileCandidate) ([]types.AddOutcome, error) {
	outcomes := make([]types.AddOutcome, 0, len(candidates))
	accepted := make([]types.FileRecord, 0, len(candidates))
	var acceptedSize int64

	for _, candidate := range candidates {
		if err := e.validator.Validate(ctx, candidate.Name, candidate.Size, candidate.Type); err != nil {
			tool.DefaultLogger.Warnf("[AddFiles] Rejected %s: %v", candidate.Name, err)
			outcomes = append(outcomes, types.AddOutcome{Name: candidate.Name, Accepted: false, Error: err.Error()})
			e.broadcast(&types.ProgressEvent{Kind: types.EventRejected, Name: candidate.Name, Message: err.Error()})
			continue
		}
		rec, err := e.Files.Create(ctx, candidate)
		if err != nil {
			tool.DefaultLogger.Errorf("[AddFiles] Failed to create record for %s: %v", candidate.Name, err)
			outcomes = append(outcomes, types.AddOutcome{Name: candidate.Name, Accepted: false, Error: err.Error()})
			continue
		}
		accepted = append(accepted, rec)
		acceptedSize += rec.Size
		outcomes = append(outcomes, types.AddOutcome{Name: rec.Name, Accepted: true, File: &rec})
	}

	if len(accepted) == 0 {
		return outcomes, nil
	}

	sess, err := e.Sessions.GetCurrent(ctx)
	if err != nil {
		return outcomes, fmt.Errorf("get current session: %w", err)
	}
	if _, err := e.Sessions.AddCounters(ctx, sess.ID, types.SessionDelta{
		TotalFiles: len(accepted),
		TotalSize:  acceptedSize,
	}); err != nil {
		return outcomes, fmt.Errorf("update session totals: %w", err)
	}

	for _, rec := range accepted {
		e.startUpload(rec, sess.ID)
	}
	return outcomes, nil
}

// startUpload runs one file's simulation in the background and settles the
// session counters when it finishes. A failure (typically the record being
// removed mid-flight) is terminal for that file only.
func (e *Engine) startUpload(rec types.FileRecord, sessionID int) {
	e.active.Add(1)
	e.inflight.Add(1)
	e.broadcast(&types.ProgressEvent{Kind: types.EventStarted, FileID: rec.ID, Name: rec.Name, Size: rec.Size})
	go func() {
		defer e.inflight.Done()
		defer e.active.Add(-1)
		ctx := context.Background()

		err := e.simulator.Simulate(ctx, rec.ID, func(progress, speed float64) {
			e.broadcast(&types.ProgressEvent{Kind: types.EventProgress, FileID: rec.ID, Name: rec.Name, Progress: progress, Speed: speed})
		})
		if err != nil {
			e.failUpload(ctx, rec, err)
			return
		}

		if _, err := e.Sessions.AddCounters(ctx, sessionID, types.SessionDelta{
			CompletedFiles: 1,
			UploadedSize:   rec.Size,
		}); err != nil {
			tool.DefaultLogger.Errorf("[Upload] Failed to settle session %d after %s: %v", sessionID, rec.Name, err)
		}
		tool.DefaultLogger.Infof("[Upload] %s uploaded successfully", rec.Name)
		e.broadcast(&types.ProgressEvent{Kind: types.EventCompleted, FileID: rec.ID, Name: rec.Name, Size: rec.Size, Progress: 100})
	}()
}

// failUpload marks the record as errored (best-effort: it may already be gone)
// and reports the failure without touching sibling uploads.
func (e *Engine) failUpload(ctx context.Context, rec types.FileRecord, cause error) {
	tool.DefaultLogger.Warnf("[Upload] %s failed: %v", rec.Name, cause)
	status := types.FileStatusError
	progress := float64(0)
	if _, err := e.Files.Update(ctx, rec.ID, types.FilePatch{Status: &status, Progress: &progress}); err != nil {
		tool.DefaultLogger.Debugf("[Upload] Could not mark %s as errored: %v", rec.Name, err)
	}
	e.broadcast(&types.ProgressEvent{
		Kind:    types.EventFailed,
		FileID:  rec.ID,
		Name:    rec.Name,
		Message: fmt.Errorf("%w: %v", ErrUploadFailed, cause).Error(),
	})
}

// RemoveFile deletes the record. An in-flight simulation for it is not
// stopped; its next store write fails NotFound and ends that run.
func (e *Engine) RemoveFile(ctx context.Context, id int) error {
	if err := e.Files.Remove(ctx, id); err != nil {
		return err
	}
	e.broadcast(&types.ProgressEvent{Kind: types.EventRemoved, FileID: id})
	return nil
}

// ClearCompleted removes every success-status record. Per-file deletions are
// best-effort so one failure does not abort the sweep.
func (e *Engine) ClearCompleted(ctx context.Context) (int, error) {
	files, err := e.Files.List(ctx)
	if err != nil {
		return 0, err
	}
	cleared := 0
	for _, f := range files {
		if f.Status != types.FileStatusSuccess {
			continue
		}
		if err := e.Files.Remove(ctx, f.ID); err != nil {
			tool.DefaultLogger.Warnf("[ClearCompleted] Failed to remove %s: %v", f.Name, err)
			continue
		}
		cleared++
	}
	e.broadcast(&types.ProgressEvent{Kind: types.EventCleared, Message: fmt.Sprintf("%d completed uploads cleared", cleared)})
	return cleared, nil
}

// CurrentSession returns the active session and its display summary.
func (e *Engine) CurrentSession(ctx context.Context) (types.SessionSummary, error) {
	sess, err := e.Sessions.GetCurrent(ctx)
	if err != nil {
		return types.SessionSummary{}, err
	}
	return e.Summarize(sess), nil
}

// Summarize derives the display metrics for a session snapshot.
func (e *Engine) Summarize(sess types.SessionRecord) types.SessionSummary {
	now := timeNow()
	elapsed := float64(0)
	if !sess.StartTime.IsZero() {
		elapsed = now.Sub(sess.StartTime).Seconds()
	}
	return types.SessionSummary{
		Session:         sess,
		PercentComplete: PercentComplete(sess),
		Speed:           FormatThroughput(SessionSpeed(sess, now) / (1024 * 1024)),
		Elapsed:         FormatDuration(elapsed),
		ActiveUploads:   int(e.active.Load()),
	}
}

// StorageUsage reports the current session's uploaded bytes against the fixed
// capacity policy.
func (e *Engine) StorageUsage(ctx context.Context) (types.StorageUsage, error) {
	sess, err := e.Sessions.GetCurrent(ctx)
	if err != nil {
		return types.StorageUsage{}, err
	}
	return types.StorageUsage{Used: sess.UploadedSize, Total: e.storageCapacity}, nil
}

// ActiveUploads is the number of simulations currently in flight.
func (e *Engine) ActiveUploads() int {
	return int(e.active.Load())
}

// Wait blocks until every started simulation reached a terminal state.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

func (e *Engine) broadcast(event *types.ProgressEvent) {
	if e.hub == nil {
		return
	}
	e.hub.Broadcast(event)
}
