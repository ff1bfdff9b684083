package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) RecordingStarted(path string, minutes int, endsAt time.Time) {
	fmt.Fprintf(f.w, "🔴 Recording started: %s\n", path)
	if minutes > 0 {
		fmt.Fprintf(f.w, "   Duration: %d minute(s), ends at %s\n", minutes, endsAt.Format("15:04:05"))
	} else {
		fmt.Fprintf(f.w, "   Press Enter to stop\n")
	}
}

func (f *Formatter) DetachedStarted(path string, pid int) {
	fmt.Fprintf(f.w, "🔴 Recording in background (pid %d): %s\n", pid, path)
	fmt.Fprintf(f.w, "   Run 'captscreen stop' to finish\n")
}

func (f *Formatter) TimerExpired() {
	fmt.Fprintf(f.w, "⏲️  Timer expired\n")
}

func (f *Formatter) RecordingStopped(duration time.Duration, path string) {
	fmt.Fprintf(f.w, "⏹️  Recording stopped (%s)\n", formatDuration(duration))
	fmt.Fprintf(f.w, "📁 Saved: %s\n", path)
}

// Progress rewrites the current console line with the elapsed time, or the
// time left for a bounded recording.
func (f *Formatter) Progress(elapsed, remaining time.Duration) {
	if remaining > 0 {
		fmt.Fprintf(f.w, "\r   Remaining: %s ", formatClock(remaining))
	} else {
		fmt.Fprintf(f.w, "\r   Recording: %s ", formatClock(elapsed))
	}
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) RecordingListHeader() {
	fmt.Fprintf(f.w, "📁 Recordings:\n\n")
}

func (f *Formatter) RecordingListItem(name string, size int64) {
	fmt.Fprintf(f.w, "  %s  (%s)\n", name, formatSize(size))
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d/time.Second)%60)
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
