// internal/events/mirror.go
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueSize      = 64
	DefaultPublishTimeout = 2 * time.Second
)

// Mirror forwards a session's events to a Publisher from a single worker, so
// they go out in the order they were recorded without the caller waiting on
// the network. When the queue is full new events are dropped.
type Mirror struct {
	pub       Publisher
	sessionID uuid.UUID
	logger    logrus.FieldLogger
	timeout   time.Duration

	mu     sync.Mutex
	seq    int
	closed bool
	queue  chan Event
	done   chan struct{}
}

// NewMirror starts the worker. queueSize <= 0 uses DefaultQueueSize.
func NewMirror(pub Publisher, sessionID uuid.UUID, logger logrus.FieldLogger, queueSize int) *Mirror {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	m := &Mirror{
		pub:       pub,
		sessionID: sessionID,
		logger:    logger,
		timeout:   DefaultPublishTimeout,
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
	}
	go m.run()
	return m
}

// Record stamps and enqueues an event. It never blocks; it is a no-op on a nil
// or closed mirror.
func (m *Mirror) Record(direction, typ string, payload map[string]interface{}) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.seq++
	ev := Event{
		SessionID: m.sessionID,
		Seq:       m.seq,
		Direction: direction,
		Type:      typ,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
	select {
	case m.queue <- ev:
	default:
		m.logger.WithFields(logrus.Fields{
			"session": m.sessionID,
			"seq":     ev.Seq,
			"type":    typ,
		}).Warn("Event queue full, dropping event")
	}
}

func (m *Mirror) run() {
	defer close(m.done)
	for ev := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		err := m.pub.Publish(ctx, ev)
		cancel()
		if err != nil {
			m.logger.WithFields(logrus.Fields{
				"session": ev.SessionID,
				"seq":     ev.Seq,
				"type":    ev.Type,
			}).Warnf("Failed to publish event: %v", err)
		}
	}
}

// Close stops accepting events and waits for the queued ones to be published.
// The publisher itself is left open.
func (m *Mirror) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()
	<-m.done
}
