package bookings

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBookingNotFound = errors.New("booking not found")

// Store is the booking ledger persistence surface.
type Store interface {
	Insert(ctx context.Context, b Booking) error
	Get(ctx context.Context, id string) (Booking, error)
	Find(ctx context.Context, date, status string, skip, limit int64) ([]Booking, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) Store {
	return &mongoStore{col: col}
}

func (m *mongoStore) Insert(ctx context.Context, b Booking) error {
	_, err := m.col.InsertOne(ctx, b)
	return err
}

func (m *mongoStore) Get(ctx context.Context, id string) (Booking, error) {
	var b Booking
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return Booking{}, ErrBookingNotFound
	}
	return b, err
}

func (m *mongoStore) Find(ctx context.Context, date, status string, skip, limit int64) ([]Booking, error) {
	filter := bson.M{}
	if date != "" {
		filter["date"] = date
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Booking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
