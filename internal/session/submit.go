package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Gateway persists a stopped session as a server-side time log. Any non-nil
// error means the log was not durably recorded.
type Gateway interface {
	SubmitTimeLog(ctx context.Context, sess SubmittedSession) error
}

// SubmittedSession is the snapshot handed to the gateway: the stopped
// session plus the moment it ended.
type SubmittedSession struct {
	ClientID    string
	ProjectID   uint
	ProjectName string
	TaskID      *uint
	TaskTitle   string
	StartedAt   time.Time
	EndedAt     time.Time
	Note        string
}

// Duration returns the tracked span.
func (s SubmittedSession) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Submit stops the active session and persists it through gw. On success the
// local session is cleared and SessionStopped is published; on failure the
// stored session is left exactly as it was, including its start timestamp, so
// elapsed time keeps accruing and the user can retry.
//
// Only one submission may be in flight at a time; concurrent calls get
// ErrSubmitInFlight.
func (s *Store) Submit(ctx context.Context, gw Gateway) (*SubmittedSession, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	sess, err := s.Stop()
	if err != nil {
		return nil, err
	}

	submitted := SubmittedSession{
		ClientID:    sess.ClientID,
		ProjectID:   sess.ProjectID,
		ProjectName: sess.ProjectName,
		TaskID:      sess.TaskID,
		TaskTitle:   sess.TaskTitle,
		StartedAt:   sess.StartedAt,
		EndedAt:     s.now().UTC(),
		Note:        sess.Note,
	}

	if err := gw.SubmitTimeLog(ctx, submitted); err != nil {
		logrus.WithError(err).Warn("time log submission failed, session kept")
		return nil, err
	}

	s.Clear()
	return &submitted, nil
}
