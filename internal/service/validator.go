package service

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/repository"
	"context"
	"errors"
)

// DomainValidator checks a submission against the reference catalog before anything is written.
type DomainValidator struct {
	bodyParts   repository.BodyPartRepository
	muscleTests repository.MuscleTestRepository
}

func NewDomainValidator(bodyParts repository.BodyPartRepository, muscleTests repository.MuscleTestRepository) *DomainValidator {
	return &DomainValidator{bodyParts: bodyParts, muscleTests: muscleTests}
}

// ValidateBodyPart returns the body part or a KindNotFound error.
func (v *DomainValidator) ValidateBodyPart(ctx context.Context, bodyPartID int64) (*domain.BodyPart, error) {
	bodyPart, err := v.bodyParts.GetByID(ctx, bodyPartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewError(domain.KindNotFound, err, "body part %d not found", bodyPartID)
		}
		return nil, domain.NewError(domain.KindPersistence, err, "failed to load body part %d", bodyPartID)
	}
	return bodyPart, nil
}

// ValidateMuscleTests checks that every submitted test belongs to the body part.
// All offending ids are reported, not only the first.
func (v *DomainValidator) ValidateMuscleTests(ctx context.Context, bodyPartID int64, tests []domain.TestRating) error {
	ids := make([]int64, 0, len(tests))
	for _, t := range tests {
		ids = append(ids, t.MuscleTestID)
	}

	found, err := v.muscleTests.GetByBodyPartAndIDs(ctx, bodyPartID, ids)
	if err != nil {
		return domain.NewError(domain.KindPersistence, err, "failed to load muscle tests")
	}

	valid := make(map[int64]bool, len(found))
	for _, mt := range found {
		valid[mt.ID] = true
	}

	var invalid []int64
	reported := make(map[int64]bool)
	for _, id := range ids {
		if !valid[id] && !reported[id] {
			invalid = append(invalid, id)
			reported[id] = true
		}
	}
	if len(invalid) > 0 {
		return domain.NewError(domain.KindInvalidInput, nil, "invalid muscle tests for body part %d: %s", bodyPartID, domain.JoinIDs(invalid))
	}
	return nil
}
