package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/db"
	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/tui"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recently saved time logs",
	Long: `Show time logs this machine has saved to the server. This is the local
mirror only; the server remains the source of truth.`,
	Run: withCatalog(runLog),
}

func init() {
	logCmd.Flags().Int("limit", 10, "Number of entries to show")
	logCmd.Flags().Bool("today", false, "Only entries that started today")
}

func runLog(cmd *cobra.Command, args []string) {
	var (
		records []models.TimeLogRecord
		err     error
	)

	if today, _ := cmd.Flags().GetBool("today"); today {
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		records, err = db.GetTimeLogsInRange(dayStart, now)
	} else {
		limit, _ := cmd.Flags().GetInt("limit")
		records, err = db.RecentTimeLogs(limit)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("No saved time logs yet")
		return
	}

	var total time.Duration
	for _, r := range records {
		d := time.Duration(r.DurationSeconds) * time.Second
		total += d
		line := fmt.Sprintf("%s  %-7s %s", r.StartedAt.Local().Format("Jan 02 15:04"), tui.FormatDuration(d), r.ProjectName)
		if r.TaskID != nil {
			line += fmt.Sprintf(" · #%d %s", *r.TaskID, r.TaskTitle)
		}
		if r.Note != "" {
			line += fmt.Sprintf(" — %s", r.Note)
		}
		fmt.Println(line)
	}
	fmt.Printf("\nTotal: %s across %d logs\n", tui.FormatDuration(total), len(records))
}
