// Package transfer drives the upload lifecycle: candidate validation, the
// per-file simulated transfer loop, and the session-level orchestration that
// keeps the aggregate counters consistent while files upload concurrently.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowdrop/flowdrop-go/store"
)

var (
	ErrSizeExceeded    = errors.New("file size exceeds limit")
	ErrUnsupportedType = errors.New("file type not supported")
	ErrUploadFailed    = errors.New("upload failed")
)

// Validator accepts or rejects candidates by size and declared media type.
type Validator struct {
	MaxSize int64
	allowed map[string]bool
	latency store.Latency
}

// NewValidator builds a validator for the given size limit and allow-list.
func NewValidator(maxSize int64, allowedTypes []string, latency store.Latency) *Validator {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &Validator{MaxSize: maxSize, allowed: allowed, latency: latency}
}

// Validate checks one candidate. Size is checked before type, both with
// strict limits: a file of exactly MaxSize bytes passes.
func (v *Validator) Validate(ctx context.Context, name string, size int64, mediaType string) error {
	if err := v.latency.Wait(ctx); err != nil {
		return err
	}
	if size > v.MaxSize {
		return fmt.Errorf("%s: %w (%d bytes)", name, ErrSizeExceeded, size)
	}
	if !v.allowed[mediaType] {
		return fmt.Errorf("%s: %w (%s)", name, ErrUnsupportedType, mediaType)
	}
	return nil
}
