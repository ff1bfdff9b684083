// Package capture drives the external ffmpeg process that does the actual
// screen grabbing and encoding. Everything above this package treats the
// recording as a black box with begin/end semantics.
package capture

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Darksidis/captscreen/internal/log"
)

// Spec describes one capture run.
type Spec struct {
	OutputPath  string
	Framerate   int
	MaxDuration time.Duration // 0 = unbounded; passed to ffmpeg as -t
}

// Recorder manages ffmpeg-based screen recording.
type Recorder struct {
	ffmpegPath string
	logger     zerolog.Logger
}

func NewRecorder(ffmpegPath string) *Recorder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Recorder{
		ffmpegPath: ffmpegPath,
		logger:     log.WithComponent("capture"),
	}
}

// Check verifies that ffmpeg can be found.
func (r *Recorder) Check() error {
	if _, err := exec.LookPath(r.ffmpegPath); err != nil {
		return &InitError{Reason: "ffmpeg not found, install it and make sure it is on PATH", Err: err}
	}
	return nil
}

// startupGrace is how long Begin watches a fresh ffmpeg process for an
// immediate exit before declaring the capture live.
const startupGrace = 300 * time.Millisecond

func (r *Recorder) buildArgs(spec Spec) ([]string, error) {
	framerate := spec.Framerate
	if framerate <= 0 {
		framerate = 30
	}
	grab, err := grabArgs(framerate)
	if err != nil {
		return nil, err
	}
	return append(grab, outputArgs(spec)...), nil
}

func outputArgs(spec Spec) []string {
	args := encodeArgs()
	if spec.MaxDuration > 0 {
		args = append(args, "-t", strconv.FormatFloat(spec.MaxDuration.Seconds(), 'f', -1, 64))
	}
	return append(args, "-y", spec.OutputPath)
}

// Begin starts writing frames to spec.OutputPath and returns a handle for the
// running capture. The process keeps running until End is called, the -t bound
// elapses, or ffmpeg dies.
func (r *Recorder) Begin(spec Spec) (*Capture, error) {
	args, err := r.buildArgs(spec)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(r.ffmpegPath, args...) // #nosec G204
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &InitError{Reason: "attaching stdin pipe", Err: err}
	}

	// ffmpeg diagnostics go next to the recording, same lifetime as the file.
	var logFile *os.File
	if f, ferr := os.Create(spec.OutputPath + ".ffmpeg.log"); ferr == nil {
		cmd.Stderr = f
		logFile = f
	}

	if err := cmd.Start(); err != nil {
		r.cleanupFailedStart(spec.OutputPath, logFile)
		return nil, &InitError{Reason: "starting ffmpeg", Err: err}
	}

	c := &Capture{
		cmd:     cmd,
		stdin:   stdin,
		path:    spec.OutputPath,
		logFile: logFile,
		done:    make(chan struct{}),
	}
	go c.wait()

	// Catch captures that die instantly (bad display, missing encoder) so the
	// caller sees an init failure instead of an empty recording.
	select {
	case <-c.done:
		r.cleanupFailedStart(spec.OutputPath, nil)
		return nil, &InitError{Reason: "ffmpeg exited during startup, see " + spec.OutputPath + ".ffmpeg.log", Err: c.exitErr}
	case <-time.After(startupGrace):
	}

	r.logger.Debug().
		Int("pid", cmd.Process.Pid).
		Str("output", spec.OutputPath).
		Msg("capture started")

	return c, nil
}

// BeginDetached starts the capture and releases the process so it survives
// this program exiting. The returned pid is the caller's only handle.
func (r *Recorder) BeginDetached(spec Spec) (int, error) {
	args, err := r.buildArgs(spec)
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(r.ffmpegPath, args...) // #nosec G204
	if f, ferr := os.Create(spec.OutputPath + ".ffmpeg.log"); ferr == nil {
		cmd.Stderr = f
		defer f.Close()
	}

	if err := cmd.Start(); err != nil {
		r.cleanupFailedStart(spec.OutputPath, nil)
		return 0, &InitError{Reason: "starting ffmpeg", Err: err}
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return 0, &InitError{Reason: "detaching ffmpeg", Err: err}
	}

	r.logger.Debug().
		Int("pid", pid).
		Str("output", spec.OutputPath).
		Msg("detached capture started")

	return pid, nil
}

// StopProcess interrupts a detached capture. SIGINT lets ffmpeg finalize the
// container before exiting.
func (r *Recorder) StopProcess(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding recording process %d: %w", pid, err)
	}
	if err := proc.Signal(os.Interrupt); err != nil {
		return fmt.Errorf("stopping recording process %d: %w", pid, err)
	}
	return nil
}

// cleanupFailedStart removes the artifacts of a capture that never produced
// frames, so a failed init leaves no partial file behind.
func (r *Recorder) cleanupFailedStart(outputPath string, logFile *os.File) {
	if logFile != nil {
		logFile.Close()
	}
	if info, err := os.Stat(outputPath); err == nil && info.Size() == 0 {
		os.Remove(outputPath)
	}
}

// Capture is a handle for one running foreground capture.
type Capture struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	path    string
	logFile *os.File

	done    chan struct{}
	exitErr error

	endOnce sync.Once
}

func (c *Capture) wait() {
	c.exitErr = c.cmd.Wait()
	if c.logFile != nil {
		c.logFile.Close()
	}
	close(c.done)
}

// Path returns the output file this capture writes to.
func (c *Capture) Path() string { return c.path }

// Done is closed when the ffmpeg process exits, for any reason.
func (c *Capture) Done() <-chan struct{} { return c.done }

// ExitErr reports how the process exited. Only valid after Done is closed.
func (c *Capture) ExitErr() error { return c.exitErr }

// End flushes and closes the output file. The "q" keystroke asks ffmpeg to
// finish the container cleanly; SIGINT and SIGKILL are escalations for a
// process that stops responding. Calling End more than once is a no-op.
func (c *Capture) End() error {
	c.endOnce.Do(func() {
		select {
		case <-c.done:
			return
		default:
		}

		if c.stdin != nil {
			_, _ = io.WriteString(c.stdin, "q")
			_ = c.stdin.Close()
		}

		select {
		case <-c.done:
			return
		case <-time.After(2 * time.Second):
		}

		_ = c.cmd.Process.Signal(os.Interrupt)
		select {
		case <-c.done:
		case <-time.After(5 * time.Second):
			_ = c.cmd.Process.Kill()
			<-c.done
		}
	})
	return nil
}
