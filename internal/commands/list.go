package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/db"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects from the local catalog",
	Run: withCatalog(func(cmd *cobra.Command, args []string) {
		projects, err := db.ListProjects()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(projects) == 0 {
			fmt.Println("No projects in the local catalog. Run 'tracker sync' first.")
			return
		}
		for _, p := range projects {
			if p.Client != "" {
				fmt.Printf("#%-4d %s (%s)\n", p.ID, p.Name, p.Client)
			} else {
				fmt.Printf("#%-4d %s\n", p.ID, p.Name)
			}
		}
	}),
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks from the local catalog",
	Run: withCatalog(func(cmd *cobra.Command, args []string) {
		projectID, _ := cmd.Flags().GetUint("project")
		tasks, err := db.ListTasks(projectID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(tasks) == 0 {
			fmt.Println("No matching tasks in the local catalog. Run 'tracker sync' first.")
			return
		}
		for _, t := range tasks {
			fmt.Printf("#%-4d [project #%d] %s", t.ID, t.ProjectID, t.Title)
			if t.Status != "" {
				fmt.Printf(" (%s)", t.Status)
			}
			fmt.Println()
		}
	}),
}

func init() {
	tasksCmd.Flags().Uint("project", 0, "Only tasks of this project")
}
