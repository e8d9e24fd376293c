package calendar

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSlotNotFound = errors.New("slot not found")

// Store is the slot persistence surface. The mongo-backed implementation
// is used by the server; tests substitute an in-memory fake.
type Store interface {
	FindFromDate(ctx context.Context, date string) ([]Slot, error)
	All(ctx context.Context) ([]Slot, error)
	Get(ctx context.Context, id string) (Slot, error)
	Insert(ctx context.Context, s Slot) error
	Delete(ctx context.Context, id string) error
	IncrementBooked(ctx context.Context, id string) error
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) Store {
	return &mongoStore{col: col}
}

func (m *mongoStore) FindFromDate(ctx context.Context, date string) ([]Slot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{"date": bson.M{"$gte": date}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	slots := []Slot{}
	if err := cur.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (m *mongoStore) All(ctx context.Context) ([]Slot, error) {
	return m.FindFromDate(ctx, "")
}

func (m *mongoStore) Get(ctx context.Context, id string) (Slot, error) {
	var s Slot
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return Slot{}, ErrSlotNotFound
	}
	return s, err
}

func (m *mongoStore) Insert(ctx context.Context, s Slot) error {
	_, err := m.col.InsertOne(ctx, s)
	return err
}

func (m *mongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// IncrementBooked bumps bookedCount by one. This is the second half of the
// confirm-booking pair; it is a plain update, not part of a transaction.
func (m *mongoStore) IncrementBooked(ctx context.Context, id string) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"bookedCount": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}
