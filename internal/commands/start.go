package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/bus"
	"github.com/work-hours/tracker/internal/db"
	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/session"
	"github.com/work-hours/tracker/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [project-id]",
	Short: "Start tracking time on a project",
	Long: `Start tracking time on a project, optionally tied to a task. With no
arguments an interactive picker opens over the cached catalog.

Examples:
  tracker start              # Pick a project/task interactively
  tracker start 7            # Track against project 7
  tracker start 3 --task 12  # Quick-start project 3, task 12
  tracker start 7 --no-ui    # Start without the timer view`,
	Args: cobra.MaximumNArgs(1),
	Run:  withCatalog(runStart),
}

func init() {
	startCmd.Flags().Uint("task", 0, "Task ID to track against")
	startCmd.Flags().Bool("no-ui", false, "Start timer without interactive UI")
}

func runStart(cmd *cobra.Command, args []string) {
	noUI, _ := cmd.Flags().GetBool("no-ui")

	// Starting while a session runs is not an error, the user just lands in
	// the active session's view.
	if active := sessions.Active(); active != nil {
		fmt.Printf("⏱️  Already tracking %s, opening the running timer.\n", active.ProjectName)
		if !noUI {
			showTimer(active)
		}
		return
	}

	var sess *models.TrackingSession

	if len(args) == 0 {
		sess = startFromPicker()
	} else {
		projectID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid project ID '%s'\n", args[0])
			return
		}
		taskID, _ := cmd.Flags().GetUint("task")
		sess = startForProject(uint(projectID), taskID)
	}

	if sess == nil {
		return
	}

	if noUI {
		fmt.Printf("⏱️  Started tracking %s\n", sess.ProjectName)
		fmt.Printf("Started at: %s\n", sess.StartedAt.Local().Format("15:04:05"))
		return
	}
	showTimer(sess)
}

// startFromPicker opens the quick-track picker over the cached catalog.
func startFromPicker() *models.TrackingSession {
	projects, err := db.ListProjects()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}
	if len(projects) == 0 {
		fmt.Println("No projects in the local catalog. Run 'tracker sync' first.")
		return nil
	}
	tasks, err := db.ListTasks(0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}

	pick, err := tui.RunPickerTUI(projects, tasks)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}
	if pick == nil {
		fmt.Println("❌ Tracking cancelled.")
		return nil
	}

	var taskID *uint
	taskTitle := ""
	if pick.Task != nil {
		taskID = &pick.Task.ID
		taskTitle = pick.Task.Title
	}

	sess, err := sessions.Start(pick.Project.ID, pick.Project.Name, taskID, taskTitle)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}
	return sess
}

// startForProject begins a session for an explicit project, going through
// the quick-start signal when a task is named so it takes the same path a
// task row would.
func startForProject(projectID, taskID uint) *models.TrackingSession {
	if _, err := db.GetProjectByID(projectID); err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}

	var taskRef *uint
	if taskID != 0 {
		task, err := db.GetTaskByID(taskID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return nil
		}
		if task.ProjectID != projectID {
			fmt.Printf("Error: task #%d belongs to project #%d, not #%d\n", taskID, task.ProjectID, projectID)
			return nil
		}
		taskRef = &taskID
	}

	eventBus.Publish(bus.Event{Topic: bus.StartFromTask, ProjectID: projectID, TaskID: taskRef})

	sess := sessions.Active()
	if sess == nil || sess.ProjectID != projectID {
		fmt.Println("Error: could not start the tracking session")
		return nil
	}
	return sess
}

// showTimer opens the timer view and mirrors a successful save into local
// history.
func showTimer(sess *models.TrackingSession) {
	err := tui.RunTimerTUI(sessions, client, sess, func(submitted session.SubmittedSession) {
		if _, err := db.RecordTimeLog(submitted); err != nil {
			fmt.Printf("Warning: time log saved to the server but not to local history: %v\n", err)
		}
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}
