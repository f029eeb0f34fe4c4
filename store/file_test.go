package store

import (
	"context"
	"errors"
	"testing"

	"github.com/flowdrop/flowdrop-go/types"
)

func newTestFileStore(seed []types.FileRecord) *FileStore {
	return NewFileStore(seed, Latency{})
}

func TestFileStoreCreateDefaults(t *testing.T) {
	s := newTestFileStore(nil)

	rec, err := s.Create(context.Background(), types.FileCandidate{Name: "report.pdf", Size: 1024, Type: "application/pdf"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("expected id 1, got %d", rec.ID)
	}
	if rec.Status != types.FileStatusPending {
		t.Errorf("expected pending status, got %s", rec.Status)
	}
	if rec.Progress != 0 || rec.UploadSpeed != 0 {
		t.Errorf("expected zero progress and speed, got %v / %v", rec.Progress, rec.UploadSpeed)
	}
	if rec.UploadedAt.IsZero() {
		t.Error("expected uploadedAt to be set")
	}
}

func TestFileStoreIDsIncreaseAfterDeletion(t *testing.T) {
	s := newTestFileStore(nil)
	ctx := context.Background()

	first, _ := s.Create(ctx, types.FileCandidate{Name: "a.txt", Type: "text/plain"})
	second, _ := s.Create(ctx, types.FileCandidate{Name: "b.txt", Type: "text/plain"})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	if err := s.Remove(ctx, first.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	third, _ := s.Create(ctx, types.FileCandidate{Name: "c.txt", Type: "text/plain"})
	if third.ID != 3 {
		t.Errorf("expected id 3 after deleting id 1, got %d", third.ID)
	}
}

func TestFileStoreListMostRecentFirst(t *testing.T) {
	s := newTestFileStore(nil)
	ctx := context.Background()

	s.Create(ctx, types.FileCandidate{Name: "first.txt", Type: "text/plain"})
	s.Create(ctx, types.FileCandidate{Name: "second.txt", Type: "text/plain"})

	files, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "second.txt" || files[1].Name != "first.txt" {
		t.Errorf("expected most-recent-first order, got %s, %s", files[0].Name, files[1].Name)
	}

	// snapshot must not alias the store
	files[0].Name = "mutated"
	again, _ := s.List(ctx)
	if again[0].Name == "mutated" {
		t.Error("List returned a view into store internals")
	}
}

func TestFileStoreUpdateMergesPatch(t *testing.T) {
	s := newTestFileStore(nil)
	ctx := context.Background()
	rec, _ := s.Create(ctx, types.FileCandidate{Name: "photo.png", Size: 2048, Type: "image/png"})

	status := types.FileStatusUploading
	progress := 42.5
	updated, err := s.Update(ctx, rec.ID, types.FilePatch{Status: &status, Progress: &progress})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != types.FileStatusUploading || updated.Progress != 42.5 {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Name != "photo.png" || updated.Size != 2048 {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if updated.ID != rec.ID {
		t.Errorf("id changed from %d to %d", rec.ID, updated.ID)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	s := newTestFileStore(nil)
	ctx := context.Background()

	if _, err := s.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update(ctx, 99, types.FilePatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := s.Remove(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove: expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSeededNextID(t *testing.T) {
	s := newTestFileStore([]types.FileRecord{{ID: 7, Name: "old.pdf"}, {ID: 3, Name: "older.pdf"}})

	rec, err := s.Create(context.Background(), types.FileCandidate{Name: "new.pdf", Type: "application/pdf"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID != 8 {
		t.Errorf("expected id 8 (max existing + 1), got %d", rec.ID)
	}
}
