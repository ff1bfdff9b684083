package session

import (
	"fmt"
	"time"
)

// State is the lifecycle phase of a recording session.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StateStopped   State = "stopped"
)

// Session is one recording attempt, from start signal to stop signal or timer
// expiry, producing exactly one output file. The output path is fixed at start
// and never changes mid-recording.
type Session struct {
	ID              string
	DurationMinutes int // 0 = unlimited
	OutputFile      string
	StartedAt       time.Time
	Deadline        time.Time // zero when unlimited
	State           State
}

// Unlimited reports whether the session stops only on an explicit signal.
func (s *Session) Unlimited() bool { return s.DurationMinutes == 0 }

// DetachedState is persisted while a background recording runs, so a later
// invocation can find and stop it.
type DetachedState struct {
	ID              string    `json:"id"`
	PID             int       `json:"pid"`
	OutputFile      string    `json:"output_file"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

// InvalidInputError rejects a duration that is not a non-negative whole number
// of minutes.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid duration %q: enter a non-negative whole number of minutes (0 = unlimited)", e.Input)
}
