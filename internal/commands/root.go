package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/api"
	"github.com/work-hours/tracker/internal/bus"
	"github.com/work-hours/tracker/internal/config"
	"github.com/work-hours/tracker/internal/db"
	"github.com/work-hours/tracker/internal/session"
	"github.com/work-hours/tracker/internal/storage"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Terminal time tracker for Work Hours",
	Long: `tracker is the terminal companion to the Work Hours web app.
Start a timer on a project or task, add a note, and save the time log to the
server without leaving your shell.`,
}

// Shared wiring built by initTracker. Commands read these instead of
// constructing their own stacks.
var (
	cfg      *config.Config
	eventBus *bus.Bus
	sessions *session.Store
	client   *api.Client
)

// initTracker builds the config, storage, bus and session store, and wires
// the bus subscriptions that let surfaces request session starts without
// referencing each other.
func initTracker() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	eventBus = bus.New()
	sessions = session.NewStore(storage.New(cfg.StateDir), eventBus)
	client = api.NewClient(cfg.ServerURL, cfg.APIToken)

	wireQuickStart()
	return nil
}

// withTracker wraps a command function to build the tracker stack first.
func withTracker(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := initTracker(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(cmd, args)
	}
}

// withCatalog additionally opens the local catalog database.
func withCatalog(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return withTracker(func(cmd *cobra.Command, args []string) {
		if err := db.Initialize(cfg.StateDir); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer db.Close()
		fn(cmd, args)
	})
}

// wireQuickStart subscribes the session store to quick-start requests so a
// task list row (or any other surface) can begin a session by publishing
// an event instead of calling the tracker directly.
func wireQuickStart() {
	eventBus.Subscribe(bus.StartFromTask, func(e bus.Event) {
		projectName := fmt.Sprintf("project #%d", e.ProjectID)
		taskTitle := ""

		// Enrich from the catalog when it is available.
		if db.DB != nil {
			if project, err := db.GetProjectByID(e.ProjectID); err == nil {
				projectName = project.Name
			}
			if e.TaskID != nil {
				if task, err := db.GetTaskByID(*e.TaskID); err == nil {
					taskTitle = task.Title
				}
			}
		}

		if _, err := sessions.Start(e.ProjectID, projectName, e.TaskID, taskTitle); err != nil {
			logrus.WithError(err).Debug("quick-start request rejected")
		}
	})
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracker %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands here
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
