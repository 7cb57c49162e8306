// Package events carries order change notifications to the websocket hub,
// the message broker, and the order list cache.
package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event is a typed notification with a JSON payload.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// New marshals payload into an Event of the given type.
func New(eventType string, payload interface{}) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: b}, nil
}

// Notifier receives events. Implementations log their own failures;
// a failed notification never fails the write that produced it.
type Notifier interface {
	Notify(ctx context.Context, evt Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, evt Event)

func (f NotifierFunc) Notify(ctx context.Context, evt Event) { f(ctx, evt) }

// Fanout delivers every event to each notifier in order. Nil entries are skipped.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, evt Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, evt)
		}
	}
}
