package models

import (
	"time"
)

// SchemaVersion tags the serialized TrackingSession so future shape changes
// can be detected instead of misread.
const SchemaVersion = 1

// TrackingSession is the single active time-tracking session. It lives in
// local storage only; once it has been persisted to the server it is deleted,
// so a session never carries a server-side id.
type TrackingSession struct {
	Version  int    `json:"version"`
	ClientID string `json:"client_id"`

	ProjectID   uint   `json:"project_id"`
	ProjectName string `json:"project_name"`
	TaskID      *uint  `json:"task_id,omitempty"`
	TaskTitle   string `json:"task_title,omitempty"`

	StartedAt time.Time `json:"started_at"`

	// ElapsedSeconds is a display convenience only. It is recomputed from
	// StartedAt on every tick and never used as the source of truth.
	ElapsedSeconds int `json:"elapsed_seconds"`

	Note string `json:"note"`
}

// Elapsed returns the wall-clock duration since the session started.
func (s *TrackingSession) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// Clone returns a copy safe for the caller to hold while the store keeps
// mutating the original.
func (s *TrackingSession) Clone() *TrackingSession {
	c := *s
	if s.TaskID != nil {
		id := *s.TaskID
		c.TaskID = &id
	}
	return &c
}
