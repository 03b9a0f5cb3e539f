package mongo

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName      = "exercises"
	exerciseImageCollectionName = "exercise_images"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// ListByMuscleTestIDs retrieves the exercises of the given muscle tests, ordered by ID,
// each joined with its images.
func (r *mongoExerciseRepository) ListByMuscleTestIDs(ctx context.Context, muscleTestIDs []int64) ([]domain.Exercise, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"muscleTestId": bson.M{"$in": muscleTestIDs}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: exerciseImageCollectionName},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "exerciseId"},
			{Key: "as", Value: "images"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}

	// $lookup does not guarantee order
	for i := range exercises {
		sortImages(exercises[i].Images)
	}
	return exercises, nil
}

func sortImages(images []domain.ExerciseImage) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Position != images[j].Position {
			return images[i].Position < images[j].Position
		}
		return images[i].ID < images[j].ID
	})
}

// EnsureExerciseIndexes creates necessary indexes for the exercises and exercise_images collections.
func EnsureExerciseIndexes(ctx context.Context, exercises, images *mongo.Collection) {
	exerciseIndexes := []mongo.IndexModel{
		{
			// Index for finding the candidate exercises of a set of tests
			Keys:    bson.D{{Key: "muscleTestId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := exercises.Indexes().CreateMany(ctx, exerciseIndexes); err != nil {
		logIndexError(exercises, err)
	}

	imageIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := images.Indexes().CreateMany(ctx, imageIndexes); err != nil {
		logIndexError(images, err)
	}
}
