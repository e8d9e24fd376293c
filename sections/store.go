package sections

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSectionNotFound = errors.New("section not found")

// Store persists one JSON document per page section.
type Store interface {
	Get(ctx context.Context, id string) (map[string]any, error)
	// Set writes the document. With merge, only the provided top-level
	// fields are written and sibling fields survive; otherwise the whole
	// document is replaced.
	Set(ctx context.Context, id string, doc map[string]any, merge bool) error
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) Store {
	return &mongoStore{col: col}
}

type sectionDoc struct {
	SectionID string         `bson:"sectionId"`
	Data      map[string]any `bson:"data"`
	UpdatedAt int64          `bson:"updatedAt"`
}

func (m *mongoStore) Get(ctx context.Context, id string) (map[string]any, error) {
	var doc sectionDoc
	err := m.col.FindOne(ctx, bson.M{"sectionId": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (m *mongoStore) Set(ctx context.Context, id string, doc map[string]any, merge bool) error {
	now := time.Now().Unix()
	opts := options.Update().SetUpsert(true)

	if merge {
		set := bson.M{"updatedAt": now}
		for k, v := range doc {
			set["data."+k] = v
		}
		_, err := m.col.UpdateOne(ctx, bson.M{"sectionId": id}, bson.M{"$set": set}, opts)
		return err
	}

	_, err := m.col.UpdateOne(ctx, bson.M{"sectionId": id},
		bson.M{"$set": bson.M{"data": doc, "updatedAt": now}}, opts)
	return err
}
