package cmd

import (
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the epoch ticker",
	Long:  `Stop the ticker. The call returns once the daemon's worker has exited, so no engine is ticked afterwards. Stopping an idle ticker is a no-op.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().Stop()
		if err != nil {
			return err
		}
		printStatus(cmd, st)
		return nil
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Resume the epoch ticker",
	Long:  `Start a new run with the engines and interval of the previous run. Fails if the ticker is already running.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().Start()
		if err != nil {
			return err
		}
		printStatus(cmd, st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(startCmd)
}
