package notify

import "context"

// Publisher delivers a single event to a sink. Key is a stable identifier for
// the event's subject (the goal ID for goal events) used by sinks that
// partition by key.
type Publisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
	Close() error
}

// NopPublisher discards every event. Used when no sink is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, event interface{}) error { return nil }

func (NopPublisher) Close() error { return nil }
