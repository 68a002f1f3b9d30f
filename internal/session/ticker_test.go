package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker_UpdatesElapsedWhileActive(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)

	// Pin the clock after starting so the recompute is observable.
	started := s.Active().StartedAt
	setClock(s, started.Add(42*time.Second))

	ticker := NewTicker(s)
	ticker.interval = 5 * time.Millisecond
	ticker.Start()
	defer ticker.Stop()

	require.Eventually(t, func() bool {
		active := s.Active()
		return active != nil && active.ElapsedSeconds == 42
	}, time.Second, 5*time.Millisecond)
}

func TestTicker_StopsWhenSessionCleared(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)

	ticker := NewTicker(s)
	ticker.interval = 5 * time.Millisecond
	ticker.Start()

	s.Clear()

	// The loop notices the cleared session and exits on its own.
	require.Eventually(t, func() bool {
		select {
		case <-ticker.done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	ticker.Stop()
}

func TestTicker_RestartReplacesLoop(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.Start(7, "Mobile App", nil, "")
	require.NoError(t, err)

	ticker := NewTicker(s)
	ticker.interval = 5 * time.Millisecond

	ticker.Start()
	first := ticker.done
	ticker.Start()
	second := ticker.done

	assert.NotEqual(t, first, second, "restart must create a fresh loop")

	// The first loop was stopped before the second began.
	select {
	case <-first:
	default:
		t.Fatal("previous ticking loop still running after restart")
	}

	ticker.Stop()
}

func TestTicker_StopWithoutStart(t *testing.T) {
	ticker := NewTicker(nil)
	assert.NotPanics(t, func() { ticker.Stop() })
}
