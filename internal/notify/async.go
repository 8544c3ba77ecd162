package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
)

// sendTimeout bounds a single delivery attempt across all sinks.
const sendTimeout = 5 * time.Second

// AsyncPublisher fans an event out to the configured sinks on a bounded
// worker pool. Publish never returns an error and never blocks on a slow or
// absent listener: delivery failures are logged and dropped, which is the
// contract for every notification this service emits.
type AsyncPublisher struct {
	logger *slog.Logger
	pool   *ants.Pool
	sinks  []Publisher
}

// NewAsyncPublisher creates an async fan-out over the given sinks with at
// most size concurrent deliveries.
func NewAsyncPublisher(logger *slog.Logger, size int, sinks ...Publisher) (*AsyncPublisher, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	return &AsyncPublisher{
		logger: logger,
		pool:   pool,
		sinks:  sinks,
	}, nil
}

// Publish schedules delivery of the event to every sink and returns
// immediately. The inbound ctx is deliberately not carried into the delivery:
// the emitting request completes on its own schedule and must not cancel an
// in-flight send.
func (p *AsyncPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	err := p.pool.Submit(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		for _, sink := range p.sinks {
			if err := sink.Publish(sendCtx, key, event); err != nil {
				p.logger.Warn("Notification delivery failed", "key", key, "error", err)
			}
		}
	})
	if err != nil {
		p.logger.Warn("Failed to schedule notification delivery", "key", key, "error", err)
	}

	return nil
}

// Close releases the worker pool and closes all sinks.
func (p *AsyncPublisher) Close() error {
	p.pool.Release()

	for _, sink := range p.sinks {
		if err := sink.Close(); err != nil {
			p.logger.Warn("Failed to close notification sink", "error", err)
		}
	}

	return nil
}
