package transfer

import (
	"testing"
	"time"

	"github.com/flowdrop/flowdrop-go/types"
)

func TestPercentComplete(t *testing.T) {
	tests := []struct {
		total, completed int
		want             int
	}{
		{0, 0, 0},
		{4, 2, 50},
		{3, 1, 33},
		{3, 2, 67},
		{5, 5, 100},
	}
	for _, tt := range tests {
		sess := types.SessionRecord{TotalFiles: tt.total, CompletedFiles: tt.completed}
		if got := PercentComplete(sess); got != tt.want {
			t.Errorf("PercentComplete(%d/%d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSessionSpeed(t *testing.T) {
	now := time.Now()

	if got := SessionSpeed(types.SessionRecord{UploadedSize: 1000}, now); got != 0 {
		t.Errorf("expected 0 for zero startTime, got %v", got)
	}

	sess := types.SessionRecord{UploadedSize: 1000, StartTime: now}
	if got := SessionSpeed(sess, now); got != 0 {
		t.Errorf("expected 0 for zero elapsed time, got %v", got)
	}

	sess.StartTime = now.Add(-10 * time.Second)
	if got := SessionSpeed(sess, now); got != 100 {
		t.Errorf("expected 100 bytes/sec, got %v", got)
	}
}

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{2621440, "2.5 MB"},
		{1073741824, "1 GB"},
		{104857600, "100 MB"},
	}
	for _, tt := range tests {
		if got := FormatByteSize(tt.bytes); got != tt.want {
			t.Errorf("FormatByteSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatThroughput(t *testing.T) {
	tests := []struct {
		speed float64
		want  string
	}{
		{0, "0 KB/s"},
		{1, "1 MB/s"},
		{2.5, "2.5 MB/s"},
		{5.75, "5.8 MB/s"},
		{1024, "1 GB/s"},
		{0.5, "512 KB/s"},
	}
	for _, tt := range tests {
		if got := FormatThroughput(tt.speed); got != tt.want {
			t.Errorf("FormatThroughput(%v) = %q, want %q", tt.speed, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{59.4, "59s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{3605, "60m 5s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
