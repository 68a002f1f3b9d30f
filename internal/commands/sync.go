package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/db"
	"github.com/work-hours/tracker/internal/models"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local project/task catalog from the server",
	Run:   withCatalog(runSync),
}

func runSync(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	projectPayloads, err := client.Projects(ctx)
	if err != nil {
		fmt.Printf("Error: could not fetch projects: %v\n", err)
		return
	}
	taskPayloads, err := client.Tasks(ctx)
	if err != nil {
		fmt.Printf("Error: could not fetch tasks: %v\n", err)
		return
	}

	projects := make([]models.Project, 0, len(projectPayloads))
	for _, p := range projectPayloads {
		projects = append(projects, models.Project{
			ID:     p.ID,
			Name:   p.Name,
			Client: p.Client,
		})
	}
	tasks := make([]models.Task, 0, len(taskPayloads))
	for _, t := range taskPayloads {
		tasks = append(tasks, models.Task{
			ID:        t.ID,
			ProjectID: t.ProjectID,
			Title:     t.Title,
			Status:    t.Status,
		})
	}

	if err := db.ReplaceProjects(projects); err != nil {
		fmt.Printf("Error: could not store projects: %v\n", err)
		return
	}
	if err := db.ReplaceTasks(tasks); err != nil {
		fmt.Printf("Error: could not store tasks: %v\n", err)
		return
	}

	fmt.Printf("🔄 Synced %d projects and %d tasks\n", len(projects), len(tasks))
}
