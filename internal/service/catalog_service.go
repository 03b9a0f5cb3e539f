package service

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"alcyxob/physio-app/internal/storage"
	"context"
	"errors"
	"log/slog"
	"time"
)

// CatalogService serves the reference data a patient picks from before submitting a session.
type CatalogService interface {
	ListBodyParts(ctx context.Context) ([]domain.BodyPart, error)
	ListMuscleTests(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error)
	ListExercises(ctx context.Context, muscleTestID int64) ([]domain.Exercise, error)
}

type catalogService struct {
	bodyParts     repository.BodyPartRepository
	muscleTests   repository.MuscleTestRepository
	exercises     repository.ExerciseRepository
	fileStorage   storage.FileStorage // nil when no bucket is configured
	presignExpiry time.Duration
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(
	bodyParts repository.BodyPartRepository,
	muscleTests repository.MuscleTestRepository,
	exercises repository.ExerciseRepository,
	fileStorage storage.FileStorage,
	presignExpiry time.Duration,
) CatalogService {
	return &catalogService{
		bodyParts:     bodyParts,
		muscleTests:   muscleTests,
		exercises:     exercises,
		fileStorage:   fileStorage,
		presignExpiry: presignExpiry,
	}
}

func (s *catalogService) ListBodyParts(ctx context.Context) ([]domain.BodyPart, error) {
	bodyParts, err := s.bodyParts.List(ctx)
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, err, "failed to list body parts")
	}
	if bodyParts == nil {
		bodyParts = []domain.BodyPart{}
	}
	return bodyParts, nil
}

// ListMuscleTests returns the tests of a body part; an unknown body part is KindNotFound.
func (s *catalogService) ListMuscleTests(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error) {
	if _, err := s.bodyParts.GetByID(ctx, bodyPartID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewError(domain.KindNotFound, err, "body part %d not found", bodyPartID)
		}
		return nil, domain.NewError(domain.KindPersistence, err, "failed to load body part %d", bodyPartID)
	}

	tests, err := s.muscleTests.ListByBodyPart(ctx, bodyPartID)
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, err, "failed to list muscle tests")
	}
	if tests == nil {
		tests = []domain.MuscleTest{}
	}
	return tests, nil
}

// ListExercises returns the exercises of a muscle test with presigned image URLs.
// An image whose URL cannot be signed is returned without one.
func (s *catalogService) ListExercises(ctx context.Context, muscleTestID int64) ([]domain.Exercise, error) {
	tests, err := s.muscleTests.GetByIDs(ctx, []int64{muscleTestID})
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, err, "failed to load muscle test %d", muscleTestID)
	}
	if len(tests) == 0 {
		return nil, domain.NewError(domain.KindNotFound, repository.ErrNotFound, "muscle test %d not found", muscleTestID)
	}

	exercises, err := s.exercises.ListByMuscleTestIDs(ctx, []int64{muscleTestID})
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, err, "failed to list exercises")
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}

	if s.fileStorage == nil {
		return exercises, nil
	}
	for i := range exercises {
		for j := range exercises[i].Images {
			img := &exercises[i].Images[j]
			url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, img.ObjectKey, s.presignExpiry)
			if err != nil {
				slog.Warn("Failed to presign exercise image", "exercise_id", exercises[i].ID, "object_key", img.ObjectKey, "error", err)
				continue
			}
			img.URL = url
		}
	}
	return exercises, nil
}
