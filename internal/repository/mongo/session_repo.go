// internal/repository/mongo/session_repo.go
package mongo

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sessionCollectionName     = "sessions"
	sessionTestCollectionName = "session_tests"
)

// mongoSessionRepository implements repository.SessionRepository.
// Sessions and their ratings live in separate collections and are joined on read.
type mongoSessionRepository struct {
	sessions     *mongo.Collection
	sessionTests *mongo.Collection
	sessionIDs   *sequence
	testIDs      *sequence
}

// NewMongoSessionRepository creates a new Session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		sessions:     db.Collection(sessionCollectionName),
		sessionTests: db.Collection(sessionTestCollectionName),
		sessionIDs:   newSequence(db, sessionCollectionName),
		testIDs:      newSequence(db, sessionTestCollectionName),
	}
}

// Create inserts a new session with an empty training plan.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.Session) (int64, error) {
	if session.UserID == "" || session.BodyPartID <= 0 {
		return 0, errors.New("session requires userId and bodyPartId")
	}

	id, err := r.sessionIDs.next(ctx)
	if err != nil {
		return 0, err
	}
	session.ID = id
	session.CreatedAt = time.Now().UTC()
	session.TrainingPlan = domain.TrainingPlan{}
	session.SessionTests = nil

	if _, err := r.sessions.InsertOne(ctx, session); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateTests inserts one session_tests row per rating in a single InsertMany.
func (r *mongoSessionRepository) CreateTests(ctx context.Context, sessionID int64, ratings []domain.TestRating) ([]domain.SessionTest, error) {
	if len(ratings) == 0 {
		return nil, errors.New("no ratings to record")
	}

	firstID, err := r.testIDs.reserve(ctx, len(ratings))
	if err != nil {
		return nil, err
	}

	tests := make([]domain.SessionTest, len(ratings))
	docs := make([]interface{}, len(ratings))
	for i, rating := range ratings {
		tests[i] = domain.SessionTest{
			ID:            firstID + int64(i),
			SessionID:     sessionID,
			MuscleTestID:  rating.MuscleTestID,
			PainIntensity: rating.PainIntensity,
		}
		docs[i] = tests[i]
	}

	if _, err := r.sessionTests.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return tests, nil
}

// UpdateTrainingPlan stores the plan on a session whose plan is still {}.
// A session whose plan was already set yields ErrUpdateFailed.
func (r *mongoSessionRepository) UpdateTrainingPlan(ctx context.Context, sessionID int64, plan domain.TrainingPlan) error {
	if plan.IsEmpty() {
		return errors.New("refusing to store an empty training plan")
	}

	filter := bson.M{
		"_id":          sessionID,
		"trainingPlan": bson.D{},
	}
	update := bson.M{"$set": bson.M{"trainingPlan": plan}}

	result, err := r.sessions.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := r.sessions.CountDocuments(ctx, bson.M{"_id": sessionID})
		if err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrUpdateFailed
	}
	return nil
}

// GetWithTests reads a session joined with its session_tests rows.
func (r *mongoSessionRepository) GetWithTests(ctx context.Context, sessionID int64) (*domain.Session, error) {
	sessions, err := r.aggregate(ctx, bson.M{"_id": sessionID})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, repository.ErrNotFound
	}
	return &sessions[0], nil
}

// ListByUser returns a user's sessions, newest first.
func (r *mongoSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	return r.aggregate(ctx, bson.M{"userId": userID})
}

func (r *mongoSessionRepository) aggregate(ctx context.Context, match bson.M) ([]domain.Session, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: sessionTestCollectionName},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "sessionId"},
			{Key: "as", Value: "sessionTests"},
		}}},
	}

	cursor, err := r.sessions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		tests := sessions[i].SessionTests
		sort.Slice(tests, func(a, b int) bool { return tests[a].ID < tests[b].ID })
		if tests == nil {
			sessions[i].SessionTests = []domain.SessionTest{}
		}
	}
	return sessions, nil
}

// EnsureSessionIndexes creates indexes for sessions and session_tests.
func EnsureSessionIndexes(ctx context.Context, sessions, sessionTests *mongo.Collection) {
	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := sessions.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		logIndexError(sessions, err)
	}

	testIndexes := []mongo.IndexModel{
		{
			// one rating per test per session
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "muscleTestId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := sessionTests.Indexes().CreateMany(ctx, testIndexes); err != nil {
		logIndexError(sessionTests, err)
	}
}
