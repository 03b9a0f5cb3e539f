package mongo

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bodyPartCollectionName = "body_parts"

// mongoBodyPartRepository implements repository.BodyPartRepository
type mongoBodyPartRepository struct {
	collection *mongo.Collection
}

// NewMongoBodyPartRepository creates a new BodyPart repository backed by MongoDB.
func NewMongoBodyPartRepository(db *mongo.Database) repository.BodyPartRepository {
	return &mongoBodyPartRepository{
		collection: db.Collection(bodyPartCollectionName),
	}
}

// GetByID retrieves a body part by its ID.
func (r *mongoBodyPartRepository) GetByID(ctx context.Context, id int64) (*domain.BodyPart, error) {
	var bodyPart domain.BodyPart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bodyPart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &bodyPart, nil
}

// List returns every body part sorted by name.
func (r *mongoBodyPartRepository) List(ctx context.Context) ([]domain.BodyPart, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bodyParts []domain.BodyPart
	if err = cursor.All(ctx, &bodyParts); err != nil {
		return nil, err
	}
	return bodyParts, nil
}

// EnsureBodyPartIndexes creates necessary indexes for the body_parts collection.
func EnsureBodyPartIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logIndexError(collection, err)
	}
}
