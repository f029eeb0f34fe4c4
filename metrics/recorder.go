package metrics

import (
	"strings"

	"github.com/flowdrop/flowdrop-go/types"
)

// Recorder translates engine events into prometheus counters and forwards
// them to the next broadcaster. Implements transfer.Broadcaster.
type Recorder struct {
	Next interface{ Broadcast(*types.ProgressEvent) }
}

// Broadcast records the event and passes it on.
func (r *Recorder) Broadcast(event *types.ProgressEvent) {
	if event != nil {
		switch event.Kind {
		case types.EventStarted:
			ActiveUploads.Inc()
		case types.EventCompleted:
			ActiveUploads.Dec()
			UploadsTotal.WithLabelValues("success").Inc()
			UploadBytesTotal.Add(float64(event.Size))
		case types.EventFailed:
			ActiveUploads.Dec()
			UploadsTotal.WithLabelValues("failure").Inc()
		case types.EventRejected:
			FilesRejectedTotal.WithLabelValues(rejectionReason(event.Message)).Inc()
		}
	}
	if r.Next != nil {
		r.Next.Broadcast(event)
	}
}

func rejectionReason(message string) string {
	switch {
	case strings.Contains(message, "size exceeds"):
		return "size"
	case strings.Contains(message, "type not supported"):
		return "type"
	default:
		return "other"
	}
}
