package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowdrop/flowdrop-go/types"
)

// FileStore keeps FileRecords in memory, most-recent-first.
type FileStore struct {
	mu      sync.RWMutex
	files   []types.FileRecord
	latency Latency
}

// NewFileStore builds a store seeded with the given records (kept in order).
func NewFileStore(seed []types.FileRecord, latency Latency) *FileStore {
	s := &FileStore{latency: latency}
	s.files = append(s.files, seed...)
	return s
}

// List returns a snapshot copy of all records, most recently created first.
func (s *FileStore) List(ctx context.Context) ([]types.FileRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.FileRecord, len(s.files))
	copy(out, s.files)
	return out, nil
}

// Get returns the record with the given id.
func (s *FileStore) Get(ctx context.Context, id int) (types.FileRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.FileRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.ID == id {
			return f, nil
		}
	}
	return types.FileRecord{}, fmt.Errorf("file %d: %w", id, ErrNotFound)
}

// Create assigns the next id, applies pending defaults and prepends the record.
func (s *FileStore) Create(ctx context.Context, candidate types.FileCandidate) (types.FileRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.FileRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := types.FileRecord{
		ID:           s.nextIDLocked(),
		Name:         candidate.Name,
		Size:         candidate.Size,
		Type:         candidate.Type,
		Status:       types.FileStatusPending,
		Progress:     0,
		UploadSpeed:  0,
		ThumbnailURL: candidate.ThumbnailURL,
		UploadedAt:   time.Now(),
	}
	s.files = append([]types.FileRecord{rec}, s.files...)
	return rec, nil
}

// Update merges the non-nil patch fields into the record. The id is never patched.
func (s *FileStore) Update(ctx context.Context, id int, patch types.FilePatch) (types.FileRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.FileRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.files {
		if s.files[i].ID != id {
			continue
		}
		f := &s.files[i]
		if patch.Name != nil {
			f.Name = *patch.Name
		}
		if patch.Status != nil {
			f.Status = *patch.Status
		}
		if patch.Progress != nil {
			f.Progress = *patch.Progress
		}
		if patch.UploadSpeed != nil {
			f.UploadSpeed = *patch.UploadSpeed
		}
		if patch.ThumbnailURL != nil {
			f.ThumbnailURL = *patch.ThumbnailURL
		}
		if patch.UploadedAt != nil {
			f.UploadedAt = *patch.UploadedAt
		}
		return *f, nil
	}
	return types.FileRecord{}, fmt.Errorf("file %d: %w", id, ErrNotFound)
}

// Remove deletes the record with the given id.
func (s *FileStore) Remove(ctx context.Context, id int) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.files {
		if s.files[i].ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("file %d: %w", id, ErrNotFound)
}

// nextIDLocked returns max existing id + 1, or 1 for an empty store.
func (s *FileStore) nextIDLocked() int {
	next := 1
	for _, f := range s.files {
		if f.ID >= next {
			next = f.ID + 1
		}
	}
	return next
}
