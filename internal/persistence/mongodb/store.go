// Package mongodb provides the MongoDB-backed activity store.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/roster/internal/domain"
)

// Store persists activity documents in a single collection keyed by
// activity_name. Participant mutations are single conditional updates, so the
// capacity and duplicate invariants hold even under concurrent writers.
type Store struct {
	coll *mongo.Collection
}

// NewStore constructs a Store over the given collection.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

type activityDocument struct {
	Name            string   `bson:"activity_name"`
	Description     string   `bson:"description"`
	Schedule        string   `bson:"schedule"`
	MaxParticipants int      `bson:"max_participants"`
	Participants    []string `bson:"participants"`
}

// InitializeIfEmpty inserts the seed set when the collection holds zero
// documents, otherwise does nothing. Returns the number of documents inserted.
func (s *Store) InitializeIfEmpty(ctx context.Context, seed []domain.Activity) (int, error) {
	count, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(seed))
	for _, a := range seed {
		docs = append(docs, toDocument(a))
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("inserting seed activities: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// ListAll returns every activity, with the storage-internal _id excluded.
func (s *Store) ListAll(ctx context.Context) ([]domain.Activity, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []activityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}

	out := make([]domain.Activity, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDocument(doc))
	}
	return out, nil
}

// FindByName looks up an activity by its unique name; absent yields (nil, nil).
func (s *Store) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	var doc activityDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "activity_name", Value: name}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding activity: %w", err)
	}
	activity := fromDocument(doc)
	return &activity, nil
}

// AddParticipant pushes the participant onto the roster in one guarded update:
// the filter requires the record to exist, the participant to be absent, and
// the roster to be under capacity. Applied is the modified-count.
func (s *Store) AddParticipant(ctx context.Context, name, participant string) (bool, error) {
	filter := bson.D{
		{Key: "activity_name", Value: name},
		{Key: "participants", Value: bson.D{{Key: "$ne", Value: participant}}},
		{Key: "$expr", Value: bson.D{{Key: "$lt", Value: bson.A{
			bson.D{{Key: "$size", Value: "$participants"}},
			"$max_participants",
		}}}},
	}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "participants", Value: participant}}}}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("adding participant: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

// RemoveParticipant pulls the participant from the roster; the filter requires
// membership so the applied flag reflects whether anything changed.
func (s *Store) RemoveParticipant(ctx context.Context, name, participant string) (bool, error) {
	filter := bson.D{
		{Key: "activity_name", Value: name},
		{Key: "participants", Value: participant},
	}
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "participants", Value: participant}}}}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("removing participant: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func toDocument(a domain.Activity) activityDocument {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return activityDocument{
		Name:            a.Name,
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

func fromDocument(doc activityDocument) domain.Activity {
	return domain.Activity{
		Name:            doc.Name,
		Description:     doc.Description,
		Schedule:        doc.Schedule,
		MaxParticipants: doc.MaxParticipants,
		Participants:    doc.Participants,
	}
}
