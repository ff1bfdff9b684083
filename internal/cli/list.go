package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Darksidis/captscreen/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			entries, err := os.ReadDir(deps.Config.OutputDir)
			if err != nil {
				if os.IsNotExist(err) {
					formatter.Info("No recordings found")
					return nil
				}
				return err
			}

			ext := "." + deps.Config.Container
			var files []os.DirEntry
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
					files = append(files, e)
				}
			}

			if len(files) == 0 {
				formatter.Info("No recordings found")
				return nil
			}

			// Names are timestamp-based, so this is newest first.
			sort.Slice(files, func(i, j int) bool {
				return files[i].Name() > files[j].Name()
			})

			formatter.RecordingListHeader()
			for _, f := range files {
				var size int64
				if info, err := os.Stat(filepath.Join(deps.Config.OutputDir, f.Name())); err == nil {
					size = info.Size()
				}
				formatter.RecordingListItem(f.Name(), size)
			}

			return nil
		},
	}

	return cmd
}
