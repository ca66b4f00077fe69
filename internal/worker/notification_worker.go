package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/events"
)

// NotificationWorker moves event delivery off the request path. It wraps a
// dispatcher: Publish enqueues, a background goroutine delivers.
type NotificationWorker struct {
	inner  events.Dispatcher
	queue  chan events.Event
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ events.Dispatcher = (*NotificationWorker)(nil)

// NewNotificationWorker builds a worker with the given queue capacity.
func NewNotificationWorker(inner events.Dispatcher, buffer int, logger *zap.Logger) *NotificationWorker {
	if buffer <= 0 {
		buffer = 256
	}
	return &NotificationWorker{inner: inner, queue: make(chan events.Event, buffer), logger: logger}
}

// Subscribe registers the handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Publish enqueues the event. A full queue, or a stopped worker, drops the
// event with a warning rather than stalling a checkout.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.Warn("notification worker stopped; event dropped",
			zap.String("event_type", string(event.Type)),
			zap.String("aggregate_id", event.AggregateID))
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full; event dropped",
			zap.String("event_type", string(event.Type)),
			zap.String("aggregate_id", event.AggregateID))
	}
	return nil
}

// Start delivers queued events until Stop is called.
func (w *NotificationWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for event := range w.queue {
			if err := w.inner.Publish(context.Background(), event); err != nil {
				w.logger.Warn("notification handler failed",
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
		}
	}()
}

// Stop closes the queue and waits for queued events to drain. Events
// published afterwards are dropped.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
