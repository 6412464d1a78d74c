package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RealZimboGuy/epochtick/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the epoch ticker state",
	Long:  `Show whether the ticker is running, its interval, how many engines it ticks and how many ticks the current run has made.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().Status()
		if err != nil {
			return err
		}
		printStatus(cmd, st)
		return nil
	},
}

func printStatus(cmd *cobra.Command, st *engine.Status) {
	state := colorYellow + "STOPPED" + colorReset
	if st.Running {
		state = colorGreen + "RUNNING" + colorReset
	}
	cmd.Printf("%sEpoch Ticker%s\n", colorBold, colorReset)
	cmd.Println("──────────────────────────────")
	cmd.Printf("%sState:%s       %s\n", colorDim, colorReset, state)
	cmd.Printf("%sInterval:%s    %s\n", colorDim, colorReset, st.Interval)
	cmd.Printf("%sEngines:%s     %d\n", colorDim, colorReset, st.EngineCount)
	if !st.Running {
		return
	}
	cmd.Printf("%sRun:%s         %s\n", colorDim, colorReset, st.RunName)
	cmd.Printf("%sTicks:%s       %d\n", colorDim, colorReset, st.Ticks)
	if st.Started != nil {
		cmd.Printf("%sStarted:%s     %s %s(%s ago)%s\n", colorDim, colorReset,
			st.Started.Format(time.RFC3339), colorDim, formatDuration(time.Since(*st.Started)), colorReset)
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
