package types

// Event kinds broadcast on the progress hub.
const (
	EventStarted   = "started"
	EventProgress  = "progress"
	EventCompleted = "completed"
	EventFailed    = "failed"
	EventRejected  = "rejected"
	EventRemoved   = "removed"
	EventCleared   = "cleared"
)

// ProgressEvent is one hub message. FileID is 0 for session-wide events
// (e.g. cleared); Progress and Speed are only set for progress ticks.
type ProgressEvent struct {
	Kind     string  `json:"kind"`
	FileID   int     `json:"fileId,omitempty"`
	Name     string  `json:"name,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
	Message  string  `json:"message,omitempty"`
}
