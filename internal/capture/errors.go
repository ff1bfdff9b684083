package capture

import "fmt"

// InitError means the capture process could not be started at all: ffmpeg is
// missing, the display is unavailable, or the spawn itself failed.
type InitError struct {
	Reason string
	Err    error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("capture init: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("capture init: %s", e.Reason)
}

func (e *InitError) Unwrap() error { return e.Err }

// WriteError means the capture process died mid-recording. The output file may
// be truncated or unplayable.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("capture failed while writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
