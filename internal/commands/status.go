package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current time tracking status",
	Run:   withTracker(runStatus),
}

var statusShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the full status output again",
	Run: withTracker(func(cmd *cobra.Command, args []string) {
		sessions.SetVisible(true)
		fmt.Println("Tracker status set to visible")
	}),
}

var statusHideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Reduce status output to a single line (for status bars)",
	Run: withTracker(func(cmd *cobra.Command, args []string) {
		sessions.SetVisible(false)
		fmt.Println("Tracker status set to compact")
	}),
}

func init() {
	statusCmd.AddCommand(statusShowCmd)
	statusCmd.AddCommand(statusHideCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	sess := sessions.Active()

	// Compact mode for status bars and prompts.
	if !sessions.Visible() {
		if sess != nil {
			fmt.Printf("%s %s\n", tui.FormatClock(sess.Elapsed(time.Now())), sess.ProjectName)
		}
		return
	}

	if sess == nil {
		fmt.Println("No active time tracking session")
		return
	}

	fmt.Printf("⏱️  Currently tracking: %s\n", sess.ProjectName)
	if sess.TaskID != nil {
		fmt.Printf("Task: #%d %s\n", *sess.TaskID, sess.TaskTitle)
	}
	fmt.Printf("Started at: %s\n", sess.StartedAt.Local().Format("15:04:05"))
	fmt.Printf("Elapsed time: %s\n", tui.FormatClock(sess.Elapsed(time.Now())))
	if sess.Note != "" {
		fmt.Printf("Note: %s\n", sess.Note)
	}
}
