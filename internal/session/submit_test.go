package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/work-hours/tracker/internal/bus"
)

// fakeGateway records submissions and fails on demand.
type fakeGateway struct {
	mu       sync.Mutex
	err      error
	block    chan struct{}
	received []SubmittedSession
}

func (g *fakeGateway) SubmitTimeLog(ctx context.Context, sess SubmittedSession) error {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.received = append(g.received, sess)
	return g.err
}

func (g *fakeGateway) calls() []SubmittedSession {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]SubmittedSession(nil), g.received...)
}

func TestSubmit_SuccessClearsSession(t *testing.T) {
	s, st, b := newTestStore(t)
	startedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	setClock(s, startedAt)

	stopped := 0
	b.Subscribe(bus.SessionStopped, func(bus.Event) { stopped++ })

	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)
	s.UpdateNote("fixed bug")

	endedAt := startedAt.Add(90 * time.Minute)
	setClock(s, endedAt)

	gw := &fakeGateway{}
	submitted, err := s.Submit(context.Background(), gw)
	require.NoError(t, err)

	assert.Equal(t, uint(7), submitted.ProjectID)
	assert.Equal(t, startedAt, submitted.StartedAt)
	assert.Equal(t, endedAt, submitted.EndedAt)
	assert.Equal(t, "fixed bug", submitted.Note)
	assert.Equal(t, 90*time.Minute, submitted.Duration())

	require.Len(t, gw.calls(), 1)
	assert.Equal(t, 1, stopped, "session-stopped must fire exactly once")

	_, ok := st.Get(ActiveSessionKey)
	assert.False(t, ok, "storage key must be gone after a confirmed save")
}

func TestSubmit_FailureKeepsSession(t *testing.T) {
	s, st, b := newTestStore(t)
	startedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	setClock(s, startedAt)

	stopped := 0
	b.Subscribe(bus.SessionStopped, func(bus.Event) { stopped++ })

	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)
	s.UpdateNote("fixed bug")
	before, _ := st.Get(ActiveSessionKey)

	setClock(s, startedAt.Add(time.Hour))
	gw := &fakeGateway{err: errors.New("server unreachable")}

	_, err = s.Submit(context.Background(), gw)
	require.Error(t, err)

	// Stored session is byte-for-byte what it was before the attempt.
	after, ok := st.Get(ActiveSessionKey)
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, stopped)

	// Retry with the same start timestamp succeeds.
	gw.err = nil
	submitted, err := s.Submit(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, startedAt, submitted.StartedAt)
	assert.Equal(t, 1, stopped)
}

func TestSubmit_EmptyNoteNeverReachesGateway(t *testing.T) {
	s, _, _ := newTestStore(t)
	setClock(s, time.Now())

	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)

	gw := &fakeGateway{}
	_, err = s.Submit(context.Background(), gw)
	assert.ErrorIs(t, err, ErrEmptyNote)
	assert.Empty(t, gw.calls())
}

func TestSubmit_SecondCallWhileInFlightIsRejected(t *testing.T) {
	s, _, _ := newTestStore(t)
	setClock(s, time.Now())

	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)
	s.UpdateNote("fixed bug")

	gw := &fakeGateway{block: make(chan struct{})}

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), gw)
		firstDone <- err
	}()

	// Wait for the first submission to take the in-flight slot.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.submitting
	}, time.Second, time.Millisecond)

	_, err = s.Submit(context.Background(), gw)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(gw.block)
	require.NoError(t, <-firstDone)
	require.Len(t, gw.calls(), 1)
}
