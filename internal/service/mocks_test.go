package service

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/generator"
	"alcyxob/physio-app/internal/repository"
	"alcyxob/physio-app/internal/storage"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// --- MockBodyPartRepository ---
var _ repository.BodyPartRepository = (*MockBodyPartRepository)(nil)

type MockBodyPartRepository struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.BodyPart, error)
	ListFunc    func(ctx context.Context) ([]domain.BodyPart, error)
}

func (m *MockBodyPartRepository) GetByID(ctx context.Context, id int64) (*domain.BodyPart, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockBodyPartRepository) List(ctx context.Context) ([]domain.BodyPart, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// --- MockMuscleTestRepository ---
var _ repository.MuscleTestRepository = (*MockMuscleTestRepository)(nil)

type MockMuscleTestRepository struct {
	GetByIDsFunc            func(ctx context.Context, ids []int64) ([]domain.MuscleTest, error)
	GetByBodyPartAndIDsFunc func(ctx context.Context, bodyPartID int64, ids []int64) ([]domain.MuscleTest, error)
	ListByBodyPartFunc      func(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error)
}

func (m *MockMuscleTestRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.MuscleTest, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, errors.New("GetByIDsFunc not implemented in mock")
}

func (m *MockMuscleTestRepository) GetByBodyPartAndIDs(ctx context.Context, bodyPartID int64, ids []int64) ([]domain.MuscleTest, error) {
	if m.GetByBodyPartAndIDsFunc != nil {
		return m.GetByBodyPartAndIDsFunc(ctx, bodyPartID, ids)
	}
	return nil, errors.New("GetByBodyPartAndIDsFunc not implemented in mock")
}

func (m *MockMuscleTestRepository) ListByBodyPart(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error) {
	if m.ListByBodyPartFunc != nil {
		return m.ListByBodyPartFunc(ctx, bodyPartID)
	}
	return nil, nil
}

// --- MockExerciseRepository ---
var _ repository.ExerciseRepository = (*MockExerciseRepository)(nil)

type MockExerciseRepository struct {
	ListByMuscleTestIDsFunc func(ctx context.Context, muscleTestIDs []int64) ([]domain.Exercise, error)
}

func (m *MockExerciseRepository) ListByMuscleTestIDs(ctx context.Context, muscleTestIDs []int64) ([]domain.Exercise, error) {
	if m.ListByMuscleTestIDsFunc != nil {
		return m.ListByMuscleTestIDsFunc(ctx, muscleTestIDs)
	}
	return nil, errors.New("ListByMuscleTestIDsFunc not implemented in mock")
}

// --- MockSessionRepository ---
var _ repository.SessionRepository = (*MockSessionRepository)(nil)

type MockSessionRepository struct {
	CreateFunc             func(ctx context.Context, session *domain.Session) (int64, error)
	CreateTestsFunc        func(ctx context.Context, sessionID int64, ratings []domain.TestRating) ([]domain.SessionTest, error)
	UpdateTrainingPlanFunc func(ctx context.Context, sessionID int64, plan domain.TrainingPlan) error
	GetWithTestsFunc       func(ctx context.Context, sessionID int64) (*domain.Session, error)
	ListByUserFunc         func(ctx context.Context, userID string) ([]domain.Session, error)

	CreateCallCount             int32
	CreateTestsCallCount        int32
	UpdateTrainingPlanCallCount int32
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) (int64, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return 0, errors.New("CreateFunc not implemented in mock")
}

func (m *MockSessionRepository) CreateTests(ctx context.Context, sessionID int64, ratings []domain.TestRating) ([]domain.SessionTest, error) {
	atomic.AddInt32(&m.CreateTestsCallCount, 1)
	if m.CreateTestsFunc != nil {
		return m.CreateTestsFunc(ctx, sessionID, ratings)
	}
	return nil, errors.New("CreateTestsFunc not implemented in mock")
}

func (m *MockSessionRepository) UpdateTrainingPlan(ctx context.Context, sessionID int64, plan domain.TrainingPlan) error {
	atomic.AddInt32(&m.UpdateTrainingPlanCallCount, 1)
	if m.UpdateTrainingPlanFunc != nil {
		return m.UpdateTrainingPlanFunc(ctx, sessionID, plan)
	}
	return errors.New("UpdateTrainingPlanFunc not implemented in mock")
}

func (m *MockSessionRepository) GetWithTests(ctx context.Context, sessionID int64) (*domain.Session, error) {
	if m.GetWithTestsFunc != nil {
		return m.GetWithTestsFunc(ctx, sessionID)
	}
	return nil, errors.New("GetWithTestsFunc not implemented in mock")
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// --- MockGenerationErrorLogRepository ---
var _ repository.GenerationErrorLogRepository = (*MockGenerationErrorLogRepository)(nil)

// MockGenerationErrorLogRepository keeps every entry it is given.
type MockGenerationErrorLogRepository struct {
	CreateFunc func(ctx context.Context, entry *domain.GenerationErrorLog) error

	mu      sync.Mutex
	Entries []domain.GenerationErrorLog
}

func (m *MockGenerationErrorLogRepository) Create(ctx context.Context, entry *domain.GenerationErrorLog) error {
	m.mu.Lock()
	m.Entries = append(m.Entries, *entry)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockGenerationErrorLogRepository) Codes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	codes := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		codes = append(codes, e.ErrorCode)
	}
	return codes
}

// --- MockGenerator ---
var _ generator.Generator = (*MockGenerator)(nil)

type MockGenerator struct {
	NameValue    string
	GenerateFunc func(ctx context.Context, in generator.Input) (*domain.TrainingPlan, error)

	GenerateCallCount int32
}

func (m *MockGenerator) Name() string { return m.NameValue }

func (m *MockGenerator) Generate(ctx context.Context, in generator.Input) (*domain.TrainingPlan, error) {
	atomic.AddInt32(&m.GenerateCallCount, 1)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	return nil, errors.New("GenerateFunc not implemented in mock")
}

// --- MockFileStorage ---
var _ storage.FileStorage = (*MockFileStorage)(nil)

type MockFileStorage struct {
	GeneratePresignedDownloadURLFunc func(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if m.GeneratePresignedDownloadURLFunc != nil {
		return m.GeneratePresignedDownloadURLFunc(ctx, objectKey, expires)
	}
	return "", errors.New("GeneratePresignedDownloadURLFunc not implemented in mock")
}
