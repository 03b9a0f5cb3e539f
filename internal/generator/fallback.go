package generator

import (
	"alcyxob/physio-app/internal/domain"
	"context"
	"fmt"
	"sort"
)

const (
	// MaxTestExercises caps how many exercises one muscle test contributes.
	MaxTestExercises = 2
	// MaxPlanExercises caps the whole plan.
	MaxPlanExercises = 5
	// RestTimeSeconds is the rest between sets for every fallback exercise.
	RestTimeSeconds = 60

	HighPainThreshold     = 7
	ModeratePainThreshold = 4

	HighPainNote = "Perform with caution due to high pain level"
)

// FallbackWarnings are attached to every deterministic plan.
var FallbackWarnings = []string{
	"Stop any exercise immediately if it causes sharp or increasing pain.",
	"This plan does not replace professional medical advice. Consult a physiotherapist if your symptoms persist or worsen.",
}

// Dosage is the sets/reps prescription for a pain level.
type Dosage struct {
	Sets int
	Reps int
}

// DosageFor returns the prescription for a pain rating:
// 7 and above (2x8), 4 to 6 (3x10), below 4 (3x12).
func DosageFor(pain int) Dosage {
	switch {
	case pain >= HighPainThreshold:
		return Dosage{Sets: 2, Reps: 8}
	case pain >= ModeratePainThreshold:
		return Dosage{Sets: 3, Reps: 10}
	default:
		return Dosage{Sets: 3, Reps: 12}
	}
}

// FallbackGenerator builds plans with a fixed rule and no I/O.
// The same input always yields the same plan.
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

func (g *FallbackGenerator) Name() string { return "fallback" }

// Generate implements Generator.
func (g *FallbackGenerator) Generate(_ context.Context, in Input) (*domain.TrainingPlan, error) {
	if !in.HasCandidates() {
		return nil, &Error{Generator: g.Name(), Stage: StageInput, Err: ErrNoCandidates}
	}
	plan := BuildFallbackPlan(in)
	return &plan, nil
}

// Selection is an exercise picked for the plan and the pain of the test it came from.
type Selection struct {
	Exercise domain.Exercise
	Pain     int
}

// SelectExercises walks the tests from most to least painful (ties keep their input
// order) and takes up to MaxTestExercises exercises of each, in input order, stopping
// as soon as MaxPlanExercises have been taken.
func SelectExercises(tests []domain.MuscleTestWithPain, exercises []domain.Exercise) []Selection {
	sorted := make([]domain.MuscleTestWithPain, len(tests))
	copy(sorted, tests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PainIntensity > sorted[j].PainIntensity
	})

	byTest := make(map[int64][]domain.Exercise)
	for _, ex := range exercises {
		byTest[ex.MuscleTestID] = append(byTest[ex.MuscleTestID], ex)
	}

	selected := make([]Selection, 0, MaxPlanExercises)
	for _, test := range sorted {
		candidates := byTest[test.ID]
		if len(candidates) > MaxTestExercises {
			candidates = candidates[:MaxTestExercises]
		}
		for _, ex := range candidates {
			selected = append(selected, Selection{Exercise: ex, Pain: test.PainIntensity})
			if len(selected) == MaxPlanExercises {
				return selected
			}
		}
	}
	return selected
}

// BuildFallbackPlan selects and doses exercises. Callers check HasCandidates first.
func BuildFallbackPlan(in Input) domain.TrainingPlan {
	selected := SelectExercises(in.Tests, in.Exercises)

	planned := make([]domain.PlannedExercise, 0, len(selected))
	for _, s := range selected {
		dosage := DosageFor(s.Pain)
		pe := domain.PlannedExercise{
			ID:              s.Exercise.ID,
			Name:            s.Exercise.DisplayName(),
			Description:     s.Exercise.Description,
			Sets:            dosage.Sets,
			Reps:            dosage.Reps,
			RestTimeSeconds: RestTimeSeconds,
		}
		if s.Pain >= HighPainThreshold {
			pe.Notes = HighPainNote
		}
		planned = append(planned, pe)
	}

	return domain.TrainingPlan{
		Title:       fmt.Sprintf("%s Rehabilitation Plan", in.BodyPartName),
		Description: fmt.Sprintf("A personalized exercise plan for your %s, focusing first on the movements that caused the most pain.", in.BodyPartName),
		Warnings:    append([]string(nil), FallbackWarnings...),
		Exercises:   planned,
	}
}
