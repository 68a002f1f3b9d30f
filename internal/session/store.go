package session

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/work-hours/tracker/internal/bus"
	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/storage"
)

// Storage keys. ActiveSessionKey holds the serialized TrackingSession,
// VisibilityKey the tracker-visible UI preference.
const (
	ActiveSessionKey = "active-time-log"
	VisibilityKey    = "time-tracker-visible"
)

var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	ErrAlreadyRunning = errors.New("a tracking session is already running")

	// ErrNoActiveSession is returned by Stop when there is nothing to stop.
	ErrNoActiveSession = errors.New("no active tracking session")

	// ErrEmptyNote is returned by Stop when the session note is empty.
	ErrEmptyNote = errors.New("a note is required before stopping")

	// ErrSubmitInFlight is returned by Submit while a previous submission
	// has not finished yet.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Store is the single source of truth for the active tracking session. All
// mutations go through it, and lifecycle events are published on the bus only
// after the corresponding storage write has completed, so subscribers that
// re-read storage always observe consistent state.
type Store struct {
	storage *storage.Store
	bus     *bus.Bus

	mu         sync.Mutex
	submitting bool

	// now is swapped in tests to control the clock.
	now func() time.Time
}

// NewStore creates a session store over the given storage and bus.
func NewStore(st *storage.Store, b *bus.Bus) *Store {
	return &Store{storage: st, bus: b, now: time.Now}
}

// Start creates and persists a new session for the given project, optionally
// tied to a task. It fails with ErrAlreadyRunning if a session is active; the
// existing session is left untouched.
func (s *Store) Start(projectID uint, projectName string, taskID *uint, taskTitle string) (*models.TrackingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.readActive(); existing != nil {
		return nil, ErrAlreadyRunning
	}

	sess := &models.TrackingSession{
		Version:     models.SchemaVersion,
		ClientID:    uuid.NewString(),
		ProjectID:   projectID,
		ProjectName: projectName,
		TaskID:      taskID,
		TaskTitle:   taskTitle,
		StartedAt:   s.now().UTC(),
	}

	if err := s.write(sess); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"task_id":    taskID,
	}).Debug("tracking session started")

	s.bus.Publish(bus.Event{Topic: bus.SessionStarted, ProjectID: projectID, TaskID: taskID})
	return sess.Clone(), nil
}

// Active returns the current session, or nil if none exists. A corrupt or
// unrecognized stored value is discarded and treated as absence.
func (s *Store) Active() *models.TrackingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readActive()
}

// UpdateNote replaces the active session's note. It is a no-op when no
// session is active.
func (s *Store) UpdateNote(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.readActive()
	if sess == nil {
		return
	}
	sess.Note = text
	if err := s.write(sess); err != nil {
		logrus.WithError(err).Warn("failed to persist note update")
	}
}

// Tick recomputes the session's elapsed seconds from its start timestamp and
// writes the refreshed state back. It reports whether a session is active so
// tickers know when to stop. The start timestamp is never touched, so missed
// ticks cannot cause drift.
func (s *Store) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.readActive()
	if sess == nil {
		return false
	}
	sess.ElapsedSeconds = int(sess.Elapsed(s.now()).Seconds())
	if err := s.write(sess); err != nil {
		logrus.WithError(err).Warn("failed to persist tick")
	}
	return true
}

// Stop validates the session and returns a copy for submission. Storage is
// not cleared here: the caller clears only after the server has acknowledged
// the time log, so a failed submission never loses tracked time.
func (s *Store) Stop() (*models.TrackingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.readActive()
	if sess == nil {
		return nil, ErrNoActiveSession
	}
	if strings.TrimSpace(sess.Note) == "" {
		return nil, ErrEmptyNote
	}
	return sess.Clone(), nil
}

// Clear removes the session from storage and announces the stop. Safe to
// call when no session is active.
func (s *Store) Clear() {
	s.mu.Lock()
	s.storage.Delete(ActiveSessionKey)
	s.mu.Unlock()

	s.bus.Publish(bus.Event{Topic: bus.SessionStopped})
}

// Visible reports the tracker-visibility UI preference. Defaults to true
// when unset or unreadable.
func (s *Store) Visible() bool {
	data, ok := s.storage.Get(VisibilityKey)
	if !ok {
		return true
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return true
	}
	return v
}

// SetVisible stores the tracker-visibility UI preference.
func (s *Store) SetVisible(v bool) {
	data, _ := json.Marshal(v)
	if err := s.storage.Put(VisibilityKey, data); err != nil {
		logrus.WithError(err).Warn("failed to persist visibility preference")
	}
}

// readActive loads and validates the stored session. Callers hold s.mu.
func (s *Store) readActive() *models.TrackingSession {
	data, ok := s.storage.Get(ActiveSessionKey)
	if !ok {
		return nil
	}

	var sess models.TrackingSession
	if err := json.Unmarshal(data, &sess); err != nil || sess.Version != models.SchemaVersion || sess.StartedAt.IsZero() {
		// Corrupt or foreign state is not fatal, just gone.
		logrus.Warn("discarding unreadable tracking session state")
		s.storage.Delete(ActiveSessionKey)
		return nil
	}
	return &sess
}

// write serializes sess to storage. Callers hold s.mu.
func (s *Store) write(sess *models.TrackingSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.storage.Put(ActiveSessionKey, data)
}
