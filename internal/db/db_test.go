package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/session"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(t.TempDir()))
	t.Cleanup(func() {
		require.NoError(t, Close())
		DB = nil
	})
}

func TestCatalog_ReplaceAndList(t *testing.T) {
	initTestDB(t)

	projects := []models.Project{
		{ID: 2, Name: "Website", Client: "Acme"},
		{ID: 1, Name: "Mobile App"},
	}
	require.NoError(t, ReplaceProjects(projects))

	got, err := ListProjects()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mobile App", got[0].Name, "projects are ordered by name")
	assert.Equal(t, "Website", got[1].Name)

	// A later sync fully replaces the catalog.
	require.NoError(t, ReplaceProjects([]models.Project{{ID: 3, Name: "Internal"}}))
	got, err = ListProjects()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)
}

func TestCatalog_Tasks(t *testing.T) {
	initTestDB(t)

	tasks := []models.Task{
		{ID: 12, ProjectID: 3, Title: "Fix header", Status: "in_progress"},
		{ID: 13, ProjectID: 3, Title: "Add footer"},
		{ID: 20, ProjectID: 4, Title: "Write docs"},
	}
	require.NoError(t, ReplaceTasks(tasks))

	all, err := ListTasks(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forProject, err := ListTasks(3)
	require.NoError(t, err)
	require.Len(t, forProject, 2)
	assert.Equal(t, "Add footer", forProject[0].Title)

	task, err := GetTaskByID(12)
	require.NoError(t, err)
	assert.Equal(t, "Fix header", task.Title)

	_, err = GetTaskByID(999)
	assert.Error(t, err)
}

func TestCatalog_GetProjectByID(t *testing.T) {
	initTestDB(t)

	require.NoError(t, ReplaceProjects([]models.Project{{ID: 7, Name: "Mobile App"}}))

	project, err := GetProjectByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Mobile App", project.Name)

	_, err = GetProjectByID(8)
	assert.Error(t, err)
}

func TestHistory_RecordAndQuery(t *testing.T) {
	initTestDB(t)

	taskID := uint(12)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	first := session.SubmittedSession{
		ProjectID:   7,
		ProjectName: "Mobile App",
		TaskID:      &taskID,
		TaskTitle:   "Fix header",
		StartedAt:   base,
		EndedAt:     base.Add(90 * time.Minute),
		Note:        "fixed bug",
	}
	second := session.SubmittedSession{
		ProjectID:   3,
		ProjectName: "Website",
		StartedAt:   base.Add(24 * time.Hour),
		EndedAt:     base.Add(25 * time.Hour),
		Note:        "reviewed designs",
	}

	rec, err := RecordTimeLog(first)
	require.NoError(t, err)
	assert.Equal(t, 5400, rec.DurationSeconds)

	_, err = RecordTimeLog(second)
	require.NoError(t, err)

	recent, err := RecentTimeLogs(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Website", recent[0].ProjectName, "newest first")

	inRange, err := GetTimeLogsInRange(base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "Mobile App", inRange[0].ProjectName)
	require.NotNil(t, inRange[0].TaskID)
	assert.Equal(t, uint(12), *inRange[0].TaskID)
}
