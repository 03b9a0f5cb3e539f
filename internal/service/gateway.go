package service

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DomainDataGateway loads what a generator needs for a set of muscle tests.
type DomainDataGateway struct {
	muscleTests repository.MuscleTestRepository
	exercises   repository.ExerciseRepository
}

func NewDomainDataGateway(muscleTests repository.MuscleTestRepository, exercises repository.ExerciseRepository) *DomainDataGateway {
	return &DomainDataGateway{muscleTests: muscleTests, exercises: exercises}
}

// FetchTestsAndExercises reads the muscle tests and their exercises (images included)
// concurrently. A failed read or an empty result is a KindDataUnavailable error.
func (g *DomainDataGateway) FetchTestsAndExercises(ctx context.Context, testIDs []int64) ([]domain.MuscleTest, []domain.Exercise, error) {
	var (
		muscleTests []domain.MuscleTest
		exercises   []domain.Exercise
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		muscleTests, err = g.muscleTests.GetByIDs(egCtx, testIDs)
		return err
	})
	eg.Go(func() error {
		var err error
		exercises, err = g.exercises.ListByMuscleTestIDs(egCtx, testIDs)
		return err
	})
	if err := eg.Wait(); err != nil {
		slog.Error("Failed to load domain data", "muscle_test_ids", testIDs, "error", err)
		return nil, nil, domain.NewError(domain.KindDataUnavailable, err, "failed to load muscle tests and exercises")
	}

	if len(muscleTests) == 0 {
		return nil, nil, domain.NewError(domain.KindDataUnavailable, nil, "no muscle tests found for %s", domain.JoinIDs(testIDs))
	}
	if len(exercises) == 0 {
		return nil, nil, domain.NewError(domain.KindDataUnavailable, nil, "no exercises available for muscle tests %s", domain.JoinIDs(testIDs))
	}
	return muscleTests, exercises, nil
}
