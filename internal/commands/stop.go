package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/db"
	"github.com/work-hours/tracker/internal/session"
	"github.com/work-hours/tracker/internal/tui"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop tracking and save the time log",
	Long: `Stop the running session and save it to the Work Hours server. A note is
required; set it here with -m or beforehand with 'tracker note'.

If the save fails the session is kept untouched, elapsed time keeps
accruing, and you can retry the same stop.`,
	Run: withCatalog(runStop),
}

func init() {
	stopCmd.Flags().StringP("message", "m", "", "Closing note for the time log")
}

func runStop(cmd *cobra.Command, args []string) {
	if message, _ := cmd.Flags().GetString("message"); message != "" {
		sessions.UpdateNote(message)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	submitted, err := sessions.Submit(ctx, client)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveSession):
			fmt.Println("No active time tracking session")
		case errors.Is(err, session.ErrEmptyNote):
			fmt.Println("Error: a note is required. Use 'tracker stop -m \"what you did\"'")
		default:
			fmt.Printf("Error: could not save the time log: %v\n", err)
			fmt.Println("Your session is untouched. Retry with 'tracker stop' once the server is reachable.")
		}
		return
	}

	if _, err := db.RecordTimeLog(*submitted); err != nil {
		fmt.Printf("Warning: time log saved to the server but not to local history: %v\n", err)
	}

	fmt.Printf("⏹️  Stopped tracking %s\n", submitted.ProjectName)
	fmt.Printf("Session duration: %s\n", tui.FormatDuration(submitted.Duration()))
}
