package transfer

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/flowdrop/flowdrop-go/types"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}
var speedUnits = []string{"B/s", "KB/s", "MB/s", "GB/s"}

// PercentComplete is the session's file-count completion percentage, rounded.
func PercentComplete(sess types.SessionRecord) int {
	if sess.TotalFiles == 0 {
		return 0
	}
	return int(math.Round(float64(sess.CompletedFiles) / float64(sess.TotalFiles) * 100))
}

// SessionSpeed is uploadedSize divided by wall-clock seconds since startTime,
// or 0 when the session has no start time or no elapsed time yet.
func SessionSpeed(sess types.SessionRecord, now time.Time) float64 {
	if sess.StartTime.IsZero() {
		return 0
	}
	elapsed := now.Sub(sess.StartTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(sess.UploadedSize) / elapsed
}

// FormatByteSize renders bytes with base-1024 units, two decimals, trailing
// zeros trimmed ("1.5 KB", "1 GB").
func FormatByteSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return trimFixed(value, 2) + " " + byteUnits[i]
}

// FormatThroughput renders an upload speed for display. Speeds coming out of
// the transfer loop are MB/s-denominated, so the value is converted through
// bytes/sec before the unit index is derived.
func FormatThroughput(speed float64) string {
	if speed == 0 {
		return "0 KB/s"
	}
	bytesPerSec := speed * 1024 * 1024
	i := int(math.Floor(math.Log(bytesPerSec) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(speedUnits) {
		i = len(speedUnits) - 1
	}
	value := bytesPerSec / math.Pow(1024, float64(i))
	return trimFixed(value, 1) + " " + speedUnits[i]
}

// FormatDuration renders "45s" under a minute, "2m 5s" above.
func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", int(math.Round(seconds)))
	}
	minutes := int(math.Floor(seconds / 60))
	remaining := int(math.Round(math.Mod(seconds, 60)))
	return fmt.Sprintf("%dm %ds", minutes, remaining)
}

// trimFixed rounds to the given decimals and drops trailing zeros, matching
// parseFloat(x.toFixed(n)) display semantics.
func trimFixed(value float64, decimals int) string {
	s := strconv.FormatFloat(value, 'f', decimals, 64)
	f, _ := strconv.ParseFloat(s, 64)
	return strconv.FormatFloat(f, 'f', -1, 64)
}
