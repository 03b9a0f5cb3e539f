// Package generator turns a patient's pain ratings into a TrainingPlan.
//
// Two strategies share the Generator interface: AIGenerator asks a chat-completion
// model for the plan and validates what comes back, FallbackGenerator applies a fixed
// selection and dosing rule without any I/O. Which one runs, and whether the second
// backs up the first, is decided by configuration (see ForMode).
package generator

import (
	"alcyxob/physio-app/internal/domain"
	"context"
	"errors"
	"fmt"
)

// ErrNoCandidates is returned when there are no tests or no exercises to plan from.
var ErrNoCandidates = errors.New("No muscle tests or exercises provided")

// Input is what every generator plans from.
type Input struct {
	BodyPartName string
	Tests        []domain.MuscleTestWithPain
	Exercises    []domain.Exercise
}

// HasCandidates reports whether there is anything to plan from.
func (in Input) HasCandidates() bool {
	return len(in.Tests) > 0 && len(in.Exercises) > 0
}

// Generator produces a TrainingPlan or an error. It never returns a partial plan.
type Generator interface {
	Name() string
	Generate(ctx context.Context, in Input) (*domain.TrainingPlan, error)
}

// Stage says where in a generator a failure happened.
type Stage string

const (
	StageInput      Stage = "input"      // nothing to plan from
	StageTransport  Stage = "transport"  // the HTTP call failed
	StageTimeout    Stage = "timeout"    // the HTTP call was aborted at the deadline
	StageParse      Stage = "parse"      // no JSON object in the response, or malformed JSON
	StageValidation Stage = "validation" // JSON did not match the plan schema
)

// Error is a generator failure.
type Error struct {
	Generator string
	Stage     Stage
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s generator %s error: %v", e.Generator, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of a generator error, or "" if err is not one.
func StageOf(err error) Stage {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Stage
	}
	return ""
}

// IsTimeout reports whether err is a generator call that ran out of time.
func IsTimeout(err error) bool {
	return StageOf(err) == StageTimeout
}
