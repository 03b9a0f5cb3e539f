package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterCollectionName = "counters"

// sequence hands out integer ids from the counters collection.
// Each named counter is one document {_id: name, value: last issued id}.
type sequence struct {
	collection *mongo.Collection
	name       string
}

func newSequence(db *mongo.Database, name string) *sequence {
	return &sequence{collection: db.Collection(counterCollectionName), name: name}
}

// reserve allocates n consecutive ids and returns the first one.
func (s *sequence) reserve(ctx context.Context, n int) (int64, error) {
	if n <= 0 {
		return 0, errors.New("sequence reserve count must be positive")
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"value": int64(n)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("reserve %d ids from %s: %w", n, s.name, err)
	}
	return counter.Value - int64(n) + 1, nil
}

// next allocates a single id.
func (s *sequence) next(ctx context.Context) (int64, error) {
	return s.reserve(ctx, 1)
}
