package repository

import (
	"alcyxob/physio-app/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// BodyPartRepository reads the body part catalog.
type BodyPartRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BodyPart, error)
	List(ctx context.Context) ([]domain.BodyPart, error)
}

// MuscleTestRepository reads muscle tests.
type MuscleTestRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.MuscleTest, error)
	// GetByBodyPartAndIDs returns the tests of bodyPartID whose id is in ids.
	GetByBodyPartAndIDs(ctx context.Context, bodyPartID int64, ids []int64) ([]domain.MuscleTest, error)
	ListByBodyPart(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error)
}

// ExerciseRepository reads exercises together with their images.
type ExerciseRepository interface {
	ListByMuscleTestIDs(ctx context.Context, muscleTestIDs []int64) ([]domain.Exercise, error)
}

// SessionRepository persists sessions and their pain ratings.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (int64, error)
	// CreateTests inserts all ratings of a session as one batch.
	CreateTests(ctx context.Context, sessionID int64, ratings []domain.TestRating) ([]domain.SessionTest, error)
	// UpdateTrainingPlan sets the plan of a session whose plan is still empty.
	UpdateTrainingPlan(ctx context.Context, sessionID int64, plan domain.TrainingPlan) error
	GetWithTests(ctx context.Context, sessionID int64) (*domain.Session, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Session, error)
}

// GenerationErrorLogRepository appends generation failure audit rows.
type GenerationErrorLogRepository interface {
	Create(ctx context.Context, entry *domain.GenerationErrorLog) error
}
