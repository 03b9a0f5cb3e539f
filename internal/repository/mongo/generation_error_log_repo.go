package mongo

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const generationErrorLogCollectionName = "generation_error_logs"

// mongoGenerationErrorLogRepository implements repository.GenerationErrorLogRepository
type mongoGenerationErrorLogRepository struct {
	collection *mongo.Collection
}

// NewMongoGenerationErrorLogRepository creates a new error log repository backed by MongoDB.
func NewMongoGenerationErrorLogRepository(db *mongo.Database) repository.GenerationErrorLogRepository {
	return &mongoGenerationErrorLogRepository{
		collection: db.Collection(generationErrorLogCollectionName),
	}
}

// Create appends an error log row.
func (r *mongoGenerationErrorLogRepository) Create(ctx context.Context, entry *domain.GenerationErrorLog) error {
	if entry.ErrorCode == "" {
		return errors.New("error log requires an error code")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// EnsureGenerationErrorLogIndexes creates indexes used by operators when browsing failures.
func EnsureGenerationErrorLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "errorCode", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logIndexError(collection, err)
	}
}
