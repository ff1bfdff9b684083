package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Darksidis/captscreen/internal/domain/session"
	"github.com/Darksidis/captscreen/internal/domain/session/usecases"
	"github.com/Darksidis/captscreen/internal/output"
)

// minutesUnset makes the flag distinguishable from an explicit 0.
const minutesUnset = -1

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var minutes int
	var detach bool

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the screen",
		Long:  "Record the screen to a timestamped video file.\nWithout --minutes you are prompted for a duration; 0 records until you press Enter.\nUse --detach to record in the background and 'captscreen stop' to finish.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			d := minutes
			if d == minutesUnset {
				var err error
				d, err = promptDuration(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			} else if d < 0 {
				return &session.InvalidInputError{Input: strconv.Itoa(d)}
			}

			if detach {
				return runDetachedRecording(deps, d, formatter)
			}
			return runForegroundRecording(cmd, deps, d, formatter)
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", minutesUnset, "Recording duration in minutes (0 = unlimited)")
	cmd.Flags().BoolVar(&detach, "detach", false, "Record in background (stop with 'captscreen stop')")

	return cmd
}

func runDetachedRecording(deps *Dependencies, minutes int, formatter *output.Formatter) error {
	state, err := deps.App.Sessions.StartDetached(minutes)
	if err != nil {
		return err
	}

	formatter.DetachedStarted(state.OutputFile, state.PID)
	return nil
}

func runForegroundRecording(cmd *cobra.Command, deps *Dependencies, minutes int, formatter *output.Formatter) error {
	active, err := deps.App.Sessions.Start(minutes)
	if err != nil {
		return err
	}

	sess := active.Session
	formatter.RecordingStarted(sess.OutputFile, minutes, sess.Deadline)

	stop := make(chan struct{})
	var stopOnce sync.Once
	signalStop := func() { stopOnce.Do(func() { close(stop) }) }

	// Enter stops an unlimited recording; a bounded one runs out its timer.
	if sess.Unlimited() {
		go func() {
			waitForLine(cmd.InOrStdin())
			signalStop()
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		signalStop()
	}()

	// Live elapsed/remaining readout, terminal only.
	var ticker *time.Ticker
	if isatty.IsTerminal(os.Stdout.Fd()) {
		ticker = time.NewTicker(time.Second)
		go func() {
			for range ticker.C {
				var remaining time.Duration
				if !sess.Deadline.IsZero() {
					remaining = time.Until(sess.Deadline)
				}
				formatter.Progress(time.Since(sess.StartedAt), remaining)
			}
		}()
	}

	reason, waitErr := deps.App.Sessions.AwaitStop(cmd.Context(), active, stop)

	if ticker != nil {
		ticker.Stop()
		io.WriteString(cmd.OutOrStdout(), "\n")
	}

	// Always finalize the file, even when the wait ended badly.
	stopErr := deps.App.Sessions.Stop(active)
	if waitErr != nil {
		return waitErr
	}
	if stopErr != nil {
		return stopErr
	}

	if reason == usecases.ReasonTimer {
		formatter.TimerExpired()
	}
	formatter.RecordingStopped(time.Since(sess.StartedAt), sess.OutputFile)
	return nil
}

func promptDuration(in io.Reader, out io.Writer) (int, error) {
	io.WriteString(out, "Enter recording duration in minutes (0 = unlimited): ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	return parseDuration(line)
}

// parseDuration turns operator input into minutes. Empty input means
// unlimited; anything that is not a non-negative integer is rejected.
func parseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &session.InvalidInputError{Input: s}
	}
	return n, nil
}

func waitForLine(in io.Reader) {
	_, _ = bufio.NewReader(in).ReadString('\n')
}
