package types

import "time"

// FileStatus is the upload lifecycle state of a tracked file.
type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusUploading FileStatus = "uploading"
	FileStatusSuccess   FileStatus = "success"
	FileStatusError     FileStatus = "error"
)

// FileRecord is one tracked upload candidate/result.
type FileRecord struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Size         int64      `json:"size"`
	Type         string     `json:"type"`
	Status       FileStatus `json:"status"`
	Progress     float64    `json:"progress"`    // 0-100
	UploadSpeed  float64    `json:"uploadSpeed"` // MB/s, 0 when idle
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	UploadedAt   time.Time  `json:"uploadedAt"`
}

// FilePatch carries the fields an update may change. Nil fields are left as-is;
// the record id is never patchable.
type FilePatch struct {
	Name         *string     `json:"name,omitempty"`
	Status       *FileStatus `json:"status,omitempty"`
	Progress     *float64    `json:"progress,omitempty"`
	UploadSpeed  *float64    `json:"uploadSpeed,omitempty"`
	ThumbnailURL *string     `json:"thumbnailUrl,omitempty"`
	UploadedAt   *time.Time  `json:"uploadedAt,omitempty"`
}

// FileCandidate describes a file the user wants to add, before validation.
type FileCandidate struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// AddOutcome reports the per-file result of an add-files batch. Exactly one of
// File / Error is meaningful depending on Accepted.
type AddOutcome struct {
	Name     string      `json:"name"`
	Accepted bool        `json:"accepted"`
	File     *FileRecord `json:"file,omitempty"`
	Error    string      `json:"error,omitempty"`
}
