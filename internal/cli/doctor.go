package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Darksidis/captscreen/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())
			ok := true

			if err := deps.App.Recorder.Check(); err != nil {
				f.SetupCheck("ffmpeg", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			switch runtime.GOOS {
			case "linux":
				if os.Getenv("DISPLAY") == "" {
					f.SetupCheck("Display", false, "DISPLAY is not set; screen capture needs an X session")
					ok = false
				} else {
					f.SetupCheck("Display", true, os.Getenv("DISPLAY"))
				}
			case "darwin":
				f.SetupCheck("Screen recording", true, "permission will be requested on first recording")
			default:
				f.SetupCheck("Display", true, "desktop capture via gdigrab")
			}

			if err := checkWritable(deps.Config.OutputDir); err != nil {
				f.SetupCheck("Output directory", false, fmt.Sprintf("%s is not writable: %v", deps.Config.OutputDir, err))
				ok = false
			} else {
				f.SetupCheck("Output directory", true, deps.Config.OutputDir)
			}

			if deps.App.Sessions.IsRecording() {
				f.SetupCheck("Active recording", true, "one in progress (run 'captscreen stop' to finish)")
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}

func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".captscreen-doctor-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(filepath.Clean(name))
}
