// internal/events/events.go
package events

import (
	"context"

	"github.com/google/uuid"
)

// Direction of the protocol line an event mirrors.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Event is one protocol message seen by a session, as published to observers.
type Event struct {
	SessionID uuid.UUID              `json:"session_id"`
	Seq       int                    `json:"seq"`
	Direction string                 `json:"direction"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Publisher delivers events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}
