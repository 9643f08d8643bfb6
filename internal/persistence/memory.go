// Package persistence provides activity store implementations.
package persistence

import (
	"context"
	"sync"

	"example.com/roster/internal/domain"
)

// InMemoryStore keeps activities in memory. It mirrors the guarded-update
// semantics of the MongoDB store and backs unit tests.
type InMemoryStore struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*domain.Activity
}

// NewInMemoryStore constructs an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{activities: make(map[string]*domain.Activity)}
}

// InitializeIfEmpty inserts the seed set only when the store holds no records.
func (s *InMemoryStore) InitializeIfEmpty(ctx context.Context, seed []domain.Activity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.activities) > 0 {
		return 0, nil
	}
	for _, a := range seed {
		copied := a
		copied.Participants = append([]string(nil), a.Participants...)
		s.activities[a.Name] = &copied
		s.order = append(s.order, a.Name)
	}
	return len(seed), nil
}

// ListAll returns every activity in insertion order.
func (s *InMemoryStore) ListAll(ctx context.Context) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Activity, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, snapshot(s.activities[name]))
	}
	return out, nil
}

// FindByName returns the named activity, or nil when absent.
func (s *InMemoryStore) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activity, ok := s.activities[name]
	if !ok {
		return nil, nil
	}
	copied := snapshot(activity)
	return &copied, nil
}

// AddParticipant appends the participant if the record exists, the participant
// is absent, and the roster is below capacity. Applied reports whether the
// record was modified.
func (s *InMemoryStore) AddParticipant(ctx context.Context, name, participant string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[name]
	if !ok || activity.Enrolled(participant) || activity.Full() {
		return false, nil
	}
	activity.Participants = append(activity.Participants, participant)
	return true, nil
}

// RemoveParticipant removes the participant if enrolled; applied flag as above.
func (s *InMemoryStore) RemoveParticipant(ctx context.Context, name, participant string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[name]
	if !ok {
		return false, nil
	}
	for i, p := range activity.Participants {
		if p == participant {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func snapshot(a *domain.Activity) domain.Activity {
	copied := *a
	copied.Participants = append([]string(nil), a.Participants...)
	return copied
}
