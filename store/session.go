package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowdrop/flowdrop-go/types"
)

// SessionStore keeps SessionRecords in memory, most-recent-first. The first
// record is the "current" session acting as the running aggregate.
type SessionStore struct {
	mu       sync.RWMutex
	sessions []types.SessionRecord
	latency  Latency
}

// NewSessionStore builds a store seeded with the given records (kept in order).
func NewSessionStore(seed []types.SessionRecord, latency Latency) *SessionStore {
	s := &SessionStore{latency: latency}
	s.sessions = append(s.sessions, seed...)
	return s
}

// List returns a snapshot copy of all sessions, most recently created first.
func (s *SessionStore) List(ctx context.Context) ([]types.SessionRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.SessionRecord, len(s.sessions))
	copy(out, s.sessions)
	return out, nil
}

// Get returns the session with the given id.
func (s *SessionStore) Get(ctx context.Context, id int) (types.SessionRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.SessionRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return types.SessionRecord{}, fmt.Errorf("session %d: %w", id, ErrNotFound)
}

// Create assigns the next id, stamps startTime and prepends the session.
func (s *SessionStore) Create(ctx context.Context, sess types.SessionRecord) (types.SessionRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.SessionRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = s.nextIDLocked()
	sess.StartTime = time.Now()
	s.sessions = append([]types.SessionRecord{sess}, s.sessions...)
	return sess, nil
}

// Remove deletes the session with the given id.
func (s *SessionStore) Remove(ctx context.Context, id int) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("session %d: %w", id, ErrNotFound)
}

// GetCurrent returns the most recent session, lazily creating a zeroed one
// when the store is empty.
func (s *SessionStore) GetCurrent(ctx context.Context) (types.SessionRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.SessionRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) == 0 {
		sess := types.SessionRecord{ID: s.nextIDLocked(), StartTime: time.Now()}
		s.sessions = append([]types.SessionRecord{sess}, s.sessions...)
		return sess, nil
	}
	return s.sessions[0], nil
}

// AddCounters applies the delta to the session's counters in one critical
// section, so concurrently completing uploads cannot lose increments.
// CompletedFiles is clamped to TotalFiles and UploadedSize to TotalSize.
func (s *SessionStore) AddCounters(ctx context.Context, id int, delta types.SessionDelta) (types.SessionRecord, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return types.SessionRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		sess := &s.sessions[i]
		sess.TotalFiles += delta.TotalFiles
		sess.CompletedFiles += delta.CompletedFiles
		sess.TotalSize += delta.TotalSize
		sess.UploadedSize += delta.UploadedSize
		if sess.CompletedFiles > sess.TotalFiles {
			sess.CompletedFiles = sess.TotalFiles
		}
		if sess.UploadedSize > sess.TotalSize {
			sess.UploadedSize = sess.TotalSize
		}
		return *sess, nil
	}
	return types.SessionRecord{}, fmt.Errorf("session %d: %w", id, ErrNotFound)
}

func (s *SessionStore) nextIDLocked() int {
	next := 1
	for _, sess := range s.sessions {
		if sess.ID >= next {
			next = sess.ID + 1
		}
	}
	return next
}
