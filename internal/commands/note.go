package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Set the note on the running session",
	Args:  cobra.MinimumNArgs(1),
	Run: withTracker(func(cmd *cobra.Command, args []string) {
		if sessions.Active() == nil {
			fmt.Println("No active time tracking session")
			return
		}

		text := strings.Join(args, " ")
		sessions.UpdateNote(text)
		fmt.Printf("📝 Note updated: %s\n", text)
	}),
}
