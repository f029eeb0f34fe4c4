// Package store holds the in-memory record stores backing the upload engine.
// Every operation sleeps a short pseudo-random latency to behave like a remote
// backend, so callers must treat all calls as suspension points.
package store

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ErrNotFound is returned when an operation references an id absent from its store.
var ErrNotFound = errors.New("record not found")

// Latency bounds the artificial per-operation delay. The zero value disables it.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// LatencyMs is a convenience constructor from millisecond bounds.
func LatencyMs(min, max int) Latency {
	return Latency{Min: time.Duration(min) * time.Millisecond, Max: time.Duration(max) * time.Millisecond}
}

// Wait sleeps a random duration in [Min, Max), honoring ctx cancellation.
func (l Latency) Wait(ctx context.Context) error {
	d := l.Min
	if span := l.Max - l.Min; span > 0 {
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
