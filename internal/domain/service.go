// Package domain defines the business logic for the roster service.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"example.com/roster/internal/events"
	"example.com/roster/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity exists under the given name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrParticipantNotFound is returned when a removal targets a participant not on the roster.
	ErrParticipantNotFound = errors.New("participant not found in this activity")
	// ErrAlreadySignedUp is returned when a participant is already on the roster.
	ErrAlreadySignedUp = errors.New("already signed up for this activity")
	// ErrActivityFull is returned when the roster has reached its capacity.
	ErrActivityFull = errors.New("activity is full")
	// ErrNotApplied indicates the store reported no modification for a mutation
	// that had already passed validation.
	ErrNotApplied = errors.New("roster change was not applied")
)

// ActivityStore captures persistence operations over activity records.
//
// AddParticipant and RemoveParticipant must be single atomic updates at the
// store level; the applied flag reports whether a matching record was modified.
type ActivityStore interface {
	InitializeIfEmpty(ctx context.Context, seed []Activity) (int, error)
	ListAll(ctx context.Context) ([]Activity, error)
	FindByName(ctx context.Context, name string) (*Activity, error)
	AddParticipant(ctx context.Context, name, participant string) (bool, error)
	RemoveParticipant(ctx context.Context, name, participant string) (bool, error)
}

// Service orchestrates roster workflows over an ActivityStore.
type Service struct {
	store     ActivityStore
	publisher events.Publisher
}

// NewService constructs a Service. A nil publisher disables event publishing.
func NewService(store ActivityStore, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{store: store, publisher: publisher}
}

// Activities returns every activity re-keyed by name.
func (s *Service) Activities(ctx context.Context) (map[string]Detail, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing activities failed")
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	out := make(map[string]Detail, len(all))
	for _, a := range all {
		out[a.Name] = Detail{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		}
	}
	return out, nil
}

// SignUp enrolls a participant into the named activity. Checks run in a fixed
// order so callers see deterministic failures: existence, duplicate, capacity.
func (s *Service) SignUp(ctx context.Context, activityName, participant string) (string, error) {
	activity, err := s.store.FindByName(ctx, activityName)
	if err != nil {
		log.Error().Err(err).Str("activity", activityName).Msg("activity lookup failed")
		return "", fmt.Errorf("looking up activity: %w", err)
	}
	if activity == nil {
		observability.RecordRejection("not_found")
		return "", ErrActivityNotFound
	}
	if activity.Enrolled(participant) {
		observability.RecordRejection("duplicate")
		return "", ErrAlreadySignedUp
	}
	if activity.Full() {
		observability.RecordRejection("capacity")
		return "", ErrActivityFull
	}

	applied, err := s.store.AddParticipant(ctx, activityName, participant)
	if err != nil {
		log.Error().Err(err).Str("activity", activityName).Msg("signup mutation failed")
		return "", fmt.Errorf("adding participant: %w", err)
	}
	if !applied {
		// Validation passed but the guarded update matched nothing: the record
		// vanished or a concurrent writer got there first.
		log.Error().Str("activity", activityName).Msg("signup mutation not applied")
		return "", ErrNotApplied
	}

	s.publish(ctx, events.RosterChanged{
		Activity:    activityName,
		Participant: participant,
		Action:      events.ActionJoined,
		OccurredAt:  time.Now().UTC(),
	})
	observability.RecordSignup()
	return fmt.Sprintf("Signed up %s for %s", participant, activityName), nil
}

// Remove withdraws a participant from the named activity.
func (s *Service) Remove(ctx context.Context, activityName, participant string) (string, error) {
	activity, err := s.store.FindByName(ctx, activityName)
	if err != nil {
		log.Error().Err(err).Str("activity", activityName).Msg("activity lookup failed")
		return "", fmt.Errorf("looking up activity: %w", err)
	}
	if activity == nil {
		observability.RecordRejection("not_found")
		return "", ErrActivityNotFound
	}
	if !activity.Enrolled(participant) {
		observability.RecordRejection("not_found")
		return "", ErrParticipantNotFound
	}

	applied, err := s.store.RemoveParticipant(ctx, activityName, participant)
	if err != nil {
		log.Error().Err(err).Str("activity", activityName).Msg("removal mutation failed")
		return "", fmt.Errorf("removing participant: %w", err)
	}
	if !applied {
		log.Error().Str("activity", activityName).Msg("removal mutation not applied")
		return "", ErrNotApplied
	}

	s.publish(ctx, events.RosterChanged{
		Activity:    activityName,
		Participant: participant,
		Action:      events.ActionLeft,
		OccurredAt:  time.Now().UTC(),
	})
	observability.RecordRemoval()
	return fmt.Sprintf("Removed %s from %s", participant, activityName), nil
}

// publish is best-effort: roster mutations are already durable, so a broker
// outage must not fail the request.
func (s *Service) publish(ctx context.Context, event events.RosterChanged) {
	if err := s.publisher.PublishRosterChanged(ctx, event); err != nil {
		log.Warn().Err(err).Str("activity", event.Activity).Msg("roster event publish failed")
	}
}
