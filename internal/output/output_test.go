package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
		{59*time.Second + 600*time.Millisecond, "1m00s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.n))
	}
}

func TestRecordingStartedBounded(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	endsAt := time.Date(2024, 1, 2, 3, 9, 5, 0, time.UTC)
	f.RecordingStarted("recording_2024-01-02_03-04-05.mp4", 5, endsAt)

	out := buf.String()
	assert.Contains(t, out, "recording_2024-01-02_03-04-05.mp4")
	assert.Contains(t, out, "5 minute(s)")
	assert.Contains(t, out, "03:09:05")
	assert.NotContains(t, out, "Press Enter")
}

func TestRecordingStartedUnlimited(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.RecordingStarted("recording.mp4", 0, time.Time{})

	assert.Contains(t, buf.String(), "Press Enter to stop")
}

func TestRecordingStopped(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.RecordingStopped(75*time.Second, "recording.mp4")

	out := buf.String()
	assert.Contains(t, out, "1m15s")
	assert.Contains(t, out, "recording.mp4")
}
