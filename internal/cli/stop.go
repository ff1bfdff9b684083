package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Darksidis/captscreen/internal/output"
)

func NewStopCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a background recording",
		Long:  "Stop the recording started with 'captscreen record --detach' and finalize the video file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			state, err := deps.App.Sessions.StopDetached()
			if err != nil {
				return err
			}

			formatter.RecordingStopped(time.Since(state.StartedAt), state.OutputFile)
			return nil
		},
	}

	return cmd
}
