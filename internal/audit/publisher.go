package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Publisher hands events to the background worker. Emit never blocks the
// calling request: when the inbox is full the event is dropped and counted
// against the caller's logs instead of stalling a calculation.
type Publisher struct {
	inbox chan<- Event
}

func NewPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox}
}

// Emit enqueues an event, filling in ID and timestamp when absent. Returns
// false when the inbox is full and the event was dropped.
func (p *Publisher) Emit(_ context.Context, event Event) bool {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case p.inbox <- event:
		return true
	default:
		return false
	}
}
