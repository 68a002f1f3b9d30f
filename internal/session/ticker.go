package session

import (
	"context"
	"sync"
	"time"
)

// Ticker drives the periodic elapsed-time recomputation while a session is
// active. Each tick is a pure recompute from the start timestamp, so a
// delayed or skipped tick never skews the total.
type Ticker struct {
	store    *Store
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker creates a ticker over store with the standard 1-second cadence.
func NewTicker(store *Store) *Ticker {
	return &Ticker{store: store, interval: time.Second}
}

// Start begins ticking. A previous loop, if any, is stopped first so there is
// never more than one loop per ticker. The loop exits on its own once no
// session is active.
func (t *Ticker) Start() {
	t.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.run(ctx, t.done)
}

// Stop cancels the ticking loop and waits for it to exit. Safe to call when
// the ticker was never started.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !t.store.Tick() {
				return
			}
		}
	}
}
