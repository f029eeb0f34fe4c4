package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/flowdrop/flowdrop-go/store"
)

const maxTestSize = 100 * 1024 * 1024

var testAllowedTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"application/pdf", "text/plain", "text/csv",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

func newTestValidator() *Validator {
	return NewValidator(maxTestSize, testAllowedTypes, store.Latency{})
}

func TestValidate(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	tests := []struct {
		name      string
		size      int64
		mediaType string
		wantErr   error
	}{
		{"small jpeg", 1024, "image/jpeg", nil},
		{"exactly at limit", maxTestSize, "application/pdf", nil},
		{"csv", 4096, "text/csv", nil},
		{"docx", 8192, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil},
		{"one byte over limit", maxTestSize + 1, "image/png", ErrSizeExceeded},
		{"huge valid type", 200 * 1024 * 1024, "image/png", ErrSizeExceeded},
		{"executable", 1024, "application/x-msdownload", ErrUnsupportedType},
		{"svg not allowed", 1024, "image/svg+xml", ErrUnsupportedType},
		{"empty type", 1024, "", ErrUnsupportedType},
		{"oversized and bad type reports size first", maxTestSize + 1, "application/zip", ErrSizeExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.name, tt.size, tt.mediaType)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCancelledContext(t *testing.T) {
	v := NewValidator(maxTestSize, testAllowedTypes, store.LatencyMs(50, 100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := v.Validate(ctx, "a.txt", 1, "text/plain"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
