package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/work-hours/tracker/internal/session"
)

// Client talks to the Work Hours server API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL, authenticating with
// the given API token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TimeLogRequest is the body of POST /api/time-log.
type TimeLogRequest struct {
	ProjectID      uint   `json:"project_id"`
	TaskID         *uint  `json:"task_id,omitempty"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	Note           string `json:"note"`
}

// ProjectPayload is a project row as the server reports it.
type ProjectPayload struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Client string `json:"client"`
}

// TaskPayload is a task row as the server reports it.
type TaskPayload struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

// SubmitTimeLog persists a stopped session as a server-side time log. Any
// non-2xx response or transport error is a failure; the caller keeps the
// local session in that case. The session's client id is sent as an
// idempotency key so a retried submission cannot double-record.
func (c *Client) SubmitTimeLog(ctx context.Context, sess session.SubmittedSession) error {
	req := TimeLogRequest{
		ProjectID:      sess.ProjectID,
		TaskID:         sess.TaskID,
		StartTimestamp: sess.StartedAt.UTC().Format(time.RFC3339),
		EndTimestamp:   sess.EndedAt.UTC().Format(time.RFC3339),
		Note:           sess.Note,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal time log: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/time-log", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", sess.ClientID)
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("submit time log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("submit time log: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// Projects fetches the caller's projects.
func (c *Client) Projects(ctx context.Context) ([]ProjectPayload, error) {
	var projects []ProjectPayload
	if err := c.getJSON(ctx, "/api/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Tasks fetches the caller's tasks across all projects.
func (c *Client) Tasks(ctx context.Context) ([]TaskPayload, error) {
	var tasks []TaskPayload
	if err := c.getJSON(ctx, "/api/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
