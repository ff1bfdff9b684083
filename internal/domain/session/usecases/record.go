package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Darksidis/captscreen/internal/capture"
	"github.com/Darksidis/captscreen/internal/domain/session"
	"github.com/Darksidis/captscreen/internal/log"
)

// Handle is the running capture as seen by the session controller.
type Handle interface {
	Done() <-chan struct{}
	ExitErr() error
	End() error
}

// Capturer abstracts the screen-capture collaborator.
type Capturer interface {
	Begin(spec capture.Spec) (Handle, error)
	BeginDetached(spec capture.Spec) (int, error)
	StopProcess(pid int) error
}

// StopReason says why AwaitStop returned.
type StopReason int

const (
	ReasonTimer      StopReason = iota // duration elapsed
	ReasonStopSignal                   // keypress or interrupt
	ReasonFinished                     // collaborator finished on its own
	ReasonFailure                      // collaborator died mid-recording
)

// Controller manages the one recording session of a process run.
type Controller struct {
	Capturer         Capturer
	OutputDir        string
	StateDir         string
	Framerate        int
	Container        string
	FilenameTemplate string

	// Now is the clock used for filenames and deadlines. Nil means time.Now.
	Now func() time.Time

	loggerOnce sync.Once
	logger     zerolog.Logger
}

// Active couples a session with its running capture.
type Active struct {
	Session *session.Session

	handle   Handle
	stopOnce sync.Once
	stopErr  error
}

// filenameData holds the template variables available for file naming.
type filenameData struct {
	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string
	Second string
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Controller) log() *zerolog.Logger {
	c.loggerOnce.Do(func() {
		c.logger = log.WithComponent("session")
	})
	return &c.logger
}

func (c *Controller) stateFilePath() string {
	return filepath.Join(c.StateDir, "current.json")
}

// IsRecording checks if a detached recording is currently active.
func (c *Controller) IsRecording() bool {
	_, err := os.Stat(c.stateFilePath())
	return err == nil
}

// Start begins a new foreground recording session. The output filename is
// derived from the current time and fixed for the session's lifetime.
func (c *Controller) Start(minutes int) (*Active, error) {
	sess, spec, err := c.prepare(minutes)
	if err != nil {
		return nil, err
	}

	handle, err := c.Capturer.Begin(spec)
	if err != nil {
		return nil, err
	}

	sess.State = session.StateRecording
	c.log().Debug().
		Str("session", sess.ID).
		Str("output", sess.OutputFile).
		Int("minutes", minutes).
		Msg("session started")

	return &Active{Session: sess, handle: handle}, nil
}

// StartDetached begins a background recording and records its state so a
// later 'stop' can find it. When the duration is non-zero the collaborator
// bounds itself, so an expired recording needs no one around to stop it.
func (c *Controller) StartDetached(minutes int) (*session.DetachedState, error) {
	sess, spec, err := c.prepare(minutes)
	if err != nil {
		return nil, err
	}

	pid, err := c.Capturer.BeginDetached(spec)
	if err != nil {
		return nil, err
	}

	state := &session.DetachedState{
		ID:              sess.ID,
		PID:             pid,
		OutputFile:      sess.OutputFile,
		StartedAt:       sess.StartedAt,
		DurationMinutes: minutes,
	}
	if err := c.writeState(state); err != nil {
		_ = c.Capturer.StopProcess(pid)
		return nil, err
	}

	c.log().Debug().
		Str("session", sess.ID).
		Int("pid", pid).
		Str("output", sess.OutputFile).
		Msg("detached session started")

	return state, nil
}

func (c *Controller) prepare(minutes int) (*session.Session, capture.Spec, error) {
	if minutes < 0 {
		return nil, capture.Spec{}, &session.InvalidInputError{Input: strconv.Itoa(minutes)}
	}
	if c.IsRecording() {
		return nil, capture.Spec{}, fmt.Errorf("a recording is already in progress. Run 'captscreen stop' first")
	}

	now := c.now()
	name, err := c.renderFilename(now)
	if err != nil {
		return nil, capture.Spec{}, fmt.Errorf("rendering filename: %w", err)
	}

	sess := &session.Session{
		ID:              uuid.NewString(),
		DurationMinutes: minutes,
		OutputFile:      filepath.Join(c.OutputDir, name),
		StartedAt:       now,
		State:           session.StateIdle,
	}

	spec := capture.Spec{
		OutputPath: sess.OutputFile,
		Framerate:  c.Framerate,
	}
	if minutes > 0 {
		sess.Deadline = now.Add(time.Duration(minutes) * time.Minute)
		spec.MaxDuration = time.Duration(minutes) * time.Minute
	}

	return sess, spec, nil
}

// AwaitStop blocks until the session's timer elapses (armed only for bounded
// sessions), a stop signal arrives, the collaborator exits on its own, or the
// context is cancelled. A collaborator death surfaces as *capture.WriteError.
func (c *Controller) AwaitStop(ctx context.Context, a *Active, stop <-chan struct{}) (StopReason, error) {
	var timer <-chan time.Time
	if !a.Session.Deadline.IsZero() {
		// Fires immediately when the deadline has already passed.
		timer = time.After(a.Session.Deadline.Sub(c.now()))
	}

	select {
	case <-timer:
		return ReasonTimer, nil
	case <-stop:
		return ReasonStopSignal, nil
	case <-a.handle.Done():
		if err := a.handle.ExitErr(); err != nil {
			return ReasonFailure, &capture.WriteError{Path: a.Session.OutputFile, Err: err}
		}
		return ReasonFinished, nil
	case <-ctx.Done():
		return ReasonStopSignal, ctx.Err()
	}
}

// Stop signals the collaborator to finalize and close the output file.
// Idempotent: calling it after the session already stopped is a no-op.
func (c *Controller) Stop(a *Active) error {
	a.stopOnce.Do(func() {
		a.stopErr = a.handle.End()
		a.Session.State = session.StateStopped
		c.log().Debug().
			Str("session", a.Session.ID).
			Str("output", a.Session.OutputFile).
			Msg("session stopped")
	})
	return a.stopErr
}

// StopDetached stops the recording referenced by the state file and returns
// its final state.
func (c *Controller) StopDetached() (*session.DetachedState, error) {
	data, err := os.ReadFile(c.stateFilePath())
	if err != nil {
		return nil, fmt.Errorf("no active recording found")
	}

	var state session.DetachedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("reading recording state: %w", err)
	}

	if state.PID > 0 {
		if err := c.Capturer.StopProcess(state.PID); err != nil {
			// Process may have died or hit its duration bound already.
			c.log().Warn().Err(err).Int("pid", state.PID).Msg("could not stop recording process")
		}
	}

	os.Remove(c.stateFilePath())

	return &state, nil
}

func (c *Controller) renderFilename(t time.Time) (string, error) {
	tmpl, err := template.New("filename").Parse(c.FilenameTemplate)
	if err != nil {
		return "", fmt.Errorf("invalid filename template: %w", err)
	}

	data := filenameData{
		Year:   t.Format("2006"),
		Month:  t.Format("01"),
		Day:    t.Format("02"),
		Hour:   t.Format("15"),
		Minute: t.Format("04"),
		Second: t.Format("05"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing filename template: %w", err)
	}
	return buf.String() + "." + c.Container, nil
}

func (c *Controller) writeState(state *session.DetachedState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	return os.WriteFile(c.stateFilePath(), data, 0o644)
}
