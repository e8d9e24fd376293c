package sessions

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSessionNotFound = errors.New("session not found")

type Store interface {
	IDs(ctx context.Context) (map[string]bool, error)
	All(ctx context.Context) ([]Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Insert(ctx context.Context, s Session) error
	Replace(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) Store {
	return &mongoStore{col: col}
}

// IDs scans every session document for its id. There is no uniqueness
// index backing id generation, just this scan.
func (m *mongoStore) IDs(ctx context.Context) (map[string]bool, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make(map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		ids[doc.ID] = true
	}
	return ids, cur.Err()
}

func (m *mongoStore) All(ctx context.Context) ([]Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Session{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *mongoStore) Get(ctx context.Context, id string) (Session, error) {
	var s Session
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return Session{}, ErrSessionNotFound
	}
	return s, err
}

func (m *mongoStore) Insert(ctx context.Context, s Session) error {
	_, err := m.col.InsertOne(ctx, s)
	return err
}

// Replace overwrites the whole session document, matching the dashboard's
// edit-in-place save.
func (m *mongoStore) Replace(ctx context.Context, s Session) error {
	res, err := m.col.ReplaceOne(ctx, bson.M{"id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (m *mongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
