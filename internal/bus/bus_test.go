package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishDeliversInRegistrationOrder(t *testing.T) {
	b := New()

	var order []int
	b.Subscribe(SessionStarted, func(Event) { order = append(order, 1) })
	b.Subscribe(SessionStarted, func(Event) { order = append(order, 2) })
	b.Subscribe(SessionStarted, func(Event) { order = append(order, 3) })

	b.Publish(Event{Topic: SessionStarted})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_PublishCarriesPayload(t *testing.T) {
	b := New()

	taskID := uint(12)
	var got Event
	b.Subscribe(StartFromTask, func(e Event) { got = e })

	b.Publish(Event{Topic: StartFromTask, ProjectID: 3, TaskID: &taskID})

	assert.Equal(t, StartFromTask, got.Topic)
	assert.Equal(t, uint(3), got.ProjectID)
	if assert.NotNil(t, got.TaskID) {
		assert.Equal(t, uint(12), *got.TaskID)
	}
}

func TestBus_TopicsAreIndependent(t *testing.T) {
	b := New()

	started := 0
	stopped := 0
	b.Subscribe(SessionStarted, func(Event) { started++ })
	b.Subscribe(SessionStopped, func(Event) { stopped++ })

	b.Publish(Event{Topic: SessionStarted})

	assert.Equal(t, 1, started)
	assert.Equal(t, 0, stopped)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()

	calls := 0
	unsubscribe := b.Subscribe(SessionStopped, func(Event) { calls++ })

	b.Publish(Event{Topic: SessionStopped})
	unsubscribe()
	b.Publish(Event{Topic: SessionStopped})
	unsubscribe() // second call is harmless

	assert.Equal(t, 1, calls)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	b := New()

	assert.NotPanics(t, func() {
		b.Publish(Event{Topic: OpenTracker})
	})
}
