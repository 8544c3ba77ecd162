package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures published events for inspection.
type recordingSink struct {
	events chan interface{}
	err    error
	closed bool
}

func newRecordingSink(err error) *recordingSink {
	return &recordingSink{events: make(chan interface{}, 8), err: err}
}

func (s *recordingSink) Publish(ctx context.Context, key string, event interface{}) error {
	s.events <- event
	return s.err
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func TestAsyncPublisher_DeliversToAllSinks(t *testing.T) {
	primary := newRecordingSink(nil)
	mirror := newRecordingSink(nil)

	publisher, err := NewAsyncPublisher(newTestLogger(), 2, primary, mirror)
	require.NoError(t, err)
	defer publisher.Close()

	event := NewGoalComplete("goal-1", "Trip")
	require.NoError(t, publisher.Publish(context.Background(), "goal-1", event))

	for _, sink := range []*recordingSink{primary, mirror} {
		select {
		case got := <-sink.events:
			assert.Equal(t, event, got)
		case <-time.After(time.Second):
			t.Fatal("sink never received the event")
		}
	}
}

func TestAsyncPublisher_SinkFailureIsSwallowed(t *testing.T) {
	failing := newRecordingSink(errors.New("listener unreachable"))
	healthy := newRecordingSink(nil)

	publisher, err := NewAsyncPublisher(newTestLogger(), 1, failing, healthy)
	require.NoError(t, err)
	defer publisher.Close()

	// Publish must report success regardless of sink failures.
	assert.NoError(t, publisher.Publish(context.Background(), "goal-1", NewGoalComplete("goal-1", "Trip")))

	// The failure of the first sink must not stop delivery to the second.
	select {
	case <-healthy.events:
	case <-time.After(time.Second):
		t.Fatal("healthy sink never received the event")
	}
}

func TestAsyncPublisher_CloseClosesSinks(t *testing.T) {
	sink := newRecordingSink(nil)

	publisher, err := NewAsyncPublisher(newTestLogger(), 1, sink)
	require.NoError(t, err)

	require.NoError(t, publisher.Close())
	assert.True(t, sink.closed)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), "k", "ignored"))
	assert.NoError(t, p.Close())
}
