package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/work-hours/tracker/internal/session"
)

func testSession() session.SubmittedSession {
	taskID := uint(12)
	return session.SubmittedSession{
		ClientID:    "11111111-2222-3333-4444-555555555555",
		ProjectID:   7,
		ProjectName: "Mobile App",
		TaskID:      &taskID,
		TaskTitle:   "Fix header",
		StartedAt:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndedAt:     time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC),
		Note:        "fixed bug",
	}
}

func TestClient_SubmitTimeLog(t *testing.T) {
	var gotReq TimeLogRequest
	var gotHeaders http.Header
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	err := c.SubmitTimeLog(context.Background(), testSession())
	require.NoError(t, err)

	assert.Equal(t, "POST /api/time-log", gotPath)
	assert.Equal(t, "Bearer secret-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", gotHeaders.Get("X-Idempotency-Key"))

	assert.Equal(t, uint(7), gotReq.ProjectID)
	require.NotNil(t, gotReq.TaskID)
	assert.Equal(t, uint(12), *gotReq.TaskID)
	assert.Equal(t, "2024-01-01T10:00:00Z", gotReq.StartTimestamp)
	assert.Equal(t, "2024-01-01T11:30:00Z", gotReq.EndTimestamp)
	assert.Equal(t, "fixed bug", gotReq.Note)
}

func TestClient_SubmitTimeLogWithoutTask(t *testing.T) {
	var raw map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sess := testSession()
	sess.TaskID = nil

	c := NewClient(srv.URL, "")
	require.NoError(t, c.SubmitTimeLog(context.Background(), sess))

	_, present := raw["task_id"]
	assert.False(t, present, "task_id must be omitted for project-level sessions")
}

func TestClient_SubmitTimeLogServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	err := c.SubmitTimeLog(context.Background(), testSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 422")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestClient_SubmitTimeLogTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, "token")
	err := c.SubmitTimeLog(context.Background(), testSession())
	assert.Error(t, err)
}

func TestClient_Projects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Website","client":"Acme"},{"id":2,"name":"Mobile App","client":""}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	projects, err := c.Projects(context.Background())
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, uint(1), projects[0].ID)
	assert.Equal(t, "Website", projects[0].Name)
	assert.Equal(t, "Acme", projects[0].Client)
}

func TestClient_Tasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":12,"project_id":3,"title":"Fix header","status":"in_progress"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	tasks, err := c.Tasks(context.Background())
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, uint(12), tasks[0].ID)
	assert.Equal(t, uint(3), tasks[0].ProjectID)
	assert.Equal(t, "Fix header", tasks[0].Title)
}

func TestClient_ProjectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "wrong")
	_, err := c.Projects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
}
