package mongo

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const muscleTestCollectionName = "muscle_tests"

// mongoMuscleTestRepository implements repository.MuscleTestRepository
type mongoMuscleTestRepository struct {
	collection *mongo.Collection
}

// NewMongoMuscleTestRepository creates a new MuscleTest repository backed by MongoDB.
func NewMongoMuscleTestRepository(db *mongo.Database) repository.MuscleTestRepository {
	return &mongoMuscleTestRepository{
		collection: db.Collection(muscleTestCollectionName),
	}
}

// GetByIDs retrieves the muscle tests with the given IDs. Missing IDs are simply absent from the result.
func (r *mongoMuscleTestRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.MuscleTest, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// GetByBodyPartAndIDs retrieves the tests of a body part restricted to the given IDs.
func (r *mongoMuscleTestRepository) GetByBodyPartAndIDs(ctx context.Context, bodyPartID int64, ids []int64) ([]domain.MuscleTest, error) {
	return r.find(ctx, bson.M{
		"bodyPartId": bodyPartID,
		"_id":        bson.M{"$in": ids},
	})
}

// ListByBodyPart retrieves every test of a body part.
func (r *mongoMuscleTestRepository) ListByBodyPart(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error) {
	return r.find(ctx, bson.M{"bodyPartId": bodyPartID})
}

func (r *mongoMuscleTestRepository) find(ctx context.Context, filter bson.M) ([]domain.MuscleTest, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []domain.MuscleTest
	if err = cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// EnsureMuscleTestIndexes creates necessary indexes for the muscle_tests collection.
func EnsureMuscleTestIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// validation looks tests up by body part and id together
			Keys:    bson.D{{Key: "bodyPartId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logIndexError(collection, err)
	}
}
