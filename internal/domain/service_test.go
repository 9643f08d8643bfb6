package domain_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/roster/internal/domain"
	"example.com/roster/internal/events"
	"example.com/roster/internal/persistence"
)

func newChessClubService(t *testing.T, capacity int) (*domain.Service, *persistence.InMemoryStore, *capturePublisher) {
	t.Helper()

	store := persistence.NewInMemoryStore()
	_, err := store.InitializeIfEmpty(context.Background(), []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: capacity,
			Participants:    []string{},
		},
	})
	require.NoError(t, err)

	publisher := &capturePublisher{}
	return domain.NewService(store, publisher), store, publisher
}

func TestSignUpUntilFull(t *testing.T) {
	ctx := context.Background()
	service, store, publisher := newChessClubService(t, 2)

	message, err := service.SignUp(ctx, "Chess Club", "a@x.edu")
	require.NoError(t, err)
	require.Equal(t, "Signed up a@x.edu for Chess Club", message)

	_, err = service.SignUp(ctx, "Chess Club", "b@x.edu")
	require.NoError(t, err)

	_, err = service.SignUp(ctx, "Chess Club", "c@x.edu")
	require.ErrorIs(t, err, domain.ErrActivityFull)

	activity, err := store.FindByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotNil(t, activity)
	require.Equal(t, []string{"a@x.edu", "b@x.edu"}, activity.Participants)
	require.LessOrEqual(t, len(activity.Participants), activity.MaxParticipants)

	require.Equal(t, []events.Action{events.ActionJoined, events.ActionJoined}, publisher.actions())
}

func TestSignUpDuplicate(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newChessClubService(t, 12)

	_, err := service.SignUp(ctx, "Chess Club", "a@x.edu")
	require.NoError(t, err)

	_, err = service.SignUp(ctx, "Chess Club", "a@x.edu")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	activity, err := store.FindByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.edu"}, activity.Participants)
}

func TestSignUpUnknownActivity(t *testing.T) {
	service, _, publisher := newChessClubService(t, 2)

	_, err := service.SignUp(context.Background(), "Unknown Club", "a@x.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
	require.Empty(t, publisher.actions())
}

func TestRemoveThenRemoveAgain(t *testing.T) {
	ctx := context.Background()
	service, store, publisher := newChessClubService(t, 2)

	_, err := service.SignUp(ctx, "Chess Club", "a@x.edu")
	require.NoError(t, err)

	message, err := service.Remove(ctx, "Chess Club", "a@x.edu")
	require.NoError(t, err)
	require.Equal(t, "Removed a@x.edu from Chess Club", message)

	activity, err := store.FindByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotContains(t, activity.Participants, "a@x.edu")

	_, err = service.Remove(ctx, "Chess Club", "a@x.edu")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)

	_, err = service.Remove(ctx, "Unknown Club", "a@x.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	require.Equal(t, []events.Action{events.ActionJoined, events.ActionLeft}, publisher.actions())
}

func TestActivitiesKeyedByName(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newChessClubService(t, 2)

	activities, err := service.Activities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	detail, ok := activities["Chess Club"]
	require.True(t, ok)
	require.Equal(t, "Fridays, 3:30 PM - 5:00 PM", detail.Schedule)
	require.Equal(t, 2, detail.MaxParticipants)
	require.Empty(t, detail.Participants)
}

func TestNotAppliedSurfacesAsInternal(t *testing.T) {
	store := &vanishingStore{}
	service := domain.NewService(store, nil)

	_, err := service.SignUp(context.Background(), "Chess Club", "a@x.edu")
	require.ErrorIs(t, err, domain.ErrNotApplied)

	_, err = service.Remove(context.Background(), "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, domain.ErrNotApplied)
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.RosterChanged
}

func (c *capturePublisher) PublishRosterChanged(_ context.Context, event events.RosterChanged) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) actions() []events.Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.Action, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.Action)
	}
	return out
}

// vanishingStore passes validation but reports every mutation as not applied,
// imitating a record disappearing between lookup and update.
type vanishingStore struct{}

func (vanishingStore) InitializeIfEmpty(context.Context, []domain.Activity) (int, error) {
	return 0, nil
}

func (vanishingStore) ListAll(context.Context) ([]domain.Activity, error) {
	return nil, nil
}

func (vanishingStore) FindByName(_ context.Context, name string) (*domain.Activity, error) {
	return &domain.Activity{
		Name:            name,
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu"},
	}, nil
}

func (vanishingStore) AddParticipant(context.Context, string, string) (bool, error) {
	return false, nil
}

func (vanishingStore) RemoveParticipant(context.Context, string, string) (bool, error) {
	return false, nil
}
