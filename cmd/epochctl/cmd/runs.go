package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ticker runs",
	Long:  `List the most recently active runs recorded in the daemon's run history. Empty when the daemon has no database configured.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runsLimit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", runsLimit)
		}
		runs, err := newClient().Runs(runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			cmd.Println("No runs recorded")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tENGINES\tINTERVAL\tTICKS\tSTARTED\tSTOPPED")
		for _, r := range runs {
			stopped := "-"
			if r.Stopped.Valid {
				stopped = r.Stopped.Time.Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\t%s\n",
				r.ID, r.Name, r.EngineCount, r.Interval(), r.Ticks, r.Started.Format(time.RFC3339), stopped)
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "l", 20, "number of runs to list")
	rootCmd.AddCommand(runsCmd)
}
