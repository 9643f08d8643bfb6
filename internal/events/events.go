// Package events defines roster-change event payloads and publishing.
package events

import (
	"context"
	"time"
)

// Action describes the direction of a roster change.
type Action string

const (
	ActionJoined Action = "joined"
	ActionLeft   Action = "left"
)

// RosterChanged is emitted after a participant joins or leaves an activity.
type RosterChanged struct {
	Activity    string    `json:"activity"`
	Participant string    `json:"participant"`
	Action      Action    `json:"action"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher emits roster-change events to downstream consumers.
type Publisher interface {
	PublishRosterChanged(ctx context.Context, event RosterChanged) error
	Close() error
}

// Noop discards events; used when no brokers are configured.
type Noop struct{}

func (Noop) PublishRosterChanged(context.Context, RosterChanged) error { return nil }

func (Noop) Close() error { return nil }
