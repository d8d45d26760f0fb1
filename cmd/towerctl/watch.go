package main

import (
	"fmt"

	"github.com/spf13/cobra"

	controltower "github.com/towerops/controltower"
	"github.com/towerops/controltower/session"
)

// watchCmd keeps running and reports when the session record file is
// removed by a sibling process (another towerctl logging out), the moment
// this process would drop to the denied state.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the session file and report when it is cleared",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fc, err := loadFileConfig()
		if err != nil {
			return err
		}
		if fc.Session.Backend == "redis" {
			return fmt.Errorf("watch only supports file-backed sessions")
		}

		path := fc.Session.FilePath
		if path == "" {
			path, err = controltower.DefaultSessionFile()
			if err != nil {
				return err
			}
		}

		store := session.NewFileStore(path)
		fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", path)

		return store.Watch(cmd.Context(), func() {
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
