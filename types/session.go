package types

import "time"

// SessionRecord aggregates counters for a batch of uploads considered as one run.
type SessionRecord struct {
	ID             int       `json:"id"`
	TotalFiles     int       `json:"totalFiles"`
	CompletedFiles int       `json:"completedFiles"`
	TotalSize      int64     `json:"totalSize"`
	UploadedSize   int64     `json:"uploadedSize"`
	StartTime      time.Time `json:"startTime"`
}

// SessionDelta is an additive counter change applied atomically by the session store.
type SessionDelta struct {
	TotalFiles     int
	CompletedFiles int
	TotalSize      int64
	UploadedSize   int64
}

// SessionSummary is the derived, display-ready view of a session.
type SessionSummary struct {
	Session         SessionRecord `json:"session"`
	PercentComplete int           `json:"percentComplete"`
	Speed           string        `json:"speed"`
	Elapsed         string        `json:"elapsed"`
	ActiveUploads   int           `json:"activeUploads"`
}

// StorageUsage reports used bytes against the fixed capacity policy.
type StorageUsage struct {
	Used  int64 `json:"used"`
	Total int64 `json:"total"`
}
