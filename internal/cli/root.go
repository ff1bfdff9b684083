package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Darksidis/captscreen/config"
	"github.com/Darksidis/captscreen/internal/app"
	"github.com/Darksidis/captscreen/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "captscreen",
		Short: "Record your screen to a timestamped video file",
		Long:  "A console screen recorder. Prompts for a duration in minutes (0 = unlimited),\nrecords via ffmpeg, and stops on timer expiry or when you press Enter.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	recordCmd := NewRecordCmd(deps)
	// Bare 'captscreen' behaves like 'captscreen record'.
	rootCmd.RunE = recordCmd.RunE
	rootCmd.Flags().AddFlagSet(recordCmd.Flags())

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(NewStopCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
