package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds the MongoDB client and one handle per dashboard collection.
// It is built once in main and passed to every feature handler, so tests
// can swap the collection-backed stores for in-memory fakes.
type Store struct {
	Client *mongo.Client

	Sections *mongo.Collection
	Slots    *mongo.Collection
	Bookings *mongo.Collection
	Sessions *mongo.Collection
	Reviews  *mongo.Collection
	Faqs     *mongo.Collection
	Assets   *mongo.Collection
	Users    *mongo.Collection
}

// Connect dials MongoDB using MONGODB_URI (localhost default) and wires up
// the dashboard collections.
func Connect(ctx context.Context) (*Store, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "momfirstdb"
	}
	d := client.Database(dbName)

	return &Store{
		Client:   client,
		Sections: d.Collection("sections"),
		Slots:    d.Collection("slots"),
		Bookings: d.Collection("bookings"),
		Sessions: d.Collection("sessions"),
		Reviews:  d.Collection("reviews"),
		Faqs:     d.Collection("faqs"),
		Assets:   d.Collection("assets"),
		Users:    d.Collection("users"),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
