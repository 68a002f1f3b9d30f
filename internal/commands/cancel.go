package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/tui"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running session without saving",
	Run:   withTracker(runCancel),
}

func init() {
	cancelCmd.Flags().Bool("yes", false, "Skip the confirmation")
}

func runCancel(cmd *cobra.Command, args []string) {
	sess := sessions.Active()
	if sess == nil {
		fmt.Println("No active time tracking session")
		return
	}

	elapsed := tui.FormatDuration(sess.Elapsed(time.Now()))
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Printf("This discards %s tracked on %s without saving.\n", elapsed, sess.ProjectName)
		fmt.Println("Run 'tracker cancel --yes' to confirm.")
		return
	}

	sessions.Clear()
	fmt.Printf("🗑️  Discarded %s tracked on %s\n", elapsed, sess.ProjectName)
}
