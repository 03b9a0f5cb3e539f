package generator

import (
	"alcyxob/physio-app/internal/domain"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// planPayload is the wire shape the model must answer with. Pointers tell a missing
// field apart from a zero one.
type planPayload struct {
	Title       *string           `json:"title" validate:"required,min=1"`
	Description *string           `json:"description" validate:"required,min=1"`
	Warnings    []string          `json:"warnings"`
	Exercises   []exercisePayload `json:"exercises" validate:"required,min=1,dive"`
}

type exercisePayload struct {
	ID              *int64  `json:"id" validate:"required"`
	Name            *string `json:"name" validate:"required,min=1"`
	Description     *string `json:"description" validate:"required"`
	Sets            *int    `json:"sets" validate:"required,gt=0"`
	Reps            *int    `json:"reps" validate:"required,gt=0"`
	RestTimeSeconds *int    `json:"rest_time_seconds" validate:"required,gte=0"`
	Notes           *string `json:"notes"`
}

var planValidator = newPlanValidator()

func newPlanValidator() *validator.Validate {
	v := validator.New()
	// report json names (exercises[0].rest_time_seconds) instead of Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParsePlan decodes and validates a model answer. candidateIDs are the exercise ids
// the model was offered; a plan referencing anything else is rejected.
// Malformed JSON is a StageParse failure, anything that decodes but does not fit the
// schema is a StageValidation failure.
func ParsePlan(raw []byte, candidateIDs map[int64]bool) (*domain.TrainingPlan, error) {
	var payload planPayload
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &Error{Stage: StageValidation, Err: fmt.Errorf("%s must be a %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)}
		}
		return nil, &Error{Stage: StageParse, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := planValidator.Struct(payload); err != nil {
		return nil, &Error{Stage: StageValidation, Err: describeValidation(err)}
	}

	plan := &domain.TrainingPlan{
		Title:       *payload.Title,
		Description: *payload.Description,
		Warnings:    payload.Warnings,
		Exercises:   make([]domain.PlannedExercise, 0, len(payload.Exercises)),
	}
	if plan.Warnings == nil {
		plan.Warnings = []string{}
	}
	for i, ex := range payload.Exercises {
		if !candidateIDs[*ex.ID] {
			return nil, &Error{Stage: StageValidation, Err: fmt.Errorf("exercises[%d].id %d is not one of the offered exercises", i, *ex.ID)}
		}
		pe := domain.PlannedExercise{
			ID:              *ex.ID,
			Name:            *ex.Name,
			Description:     *ex.Description,
			Sets:            *ex.Sets,
			Reps:            *ex.Reps,
			RestTimeSeconds: *ex.RestTimeSeconds,
		}
		if ex.Notes != nil {
			pe.Notes = *ex.Notes
		}
		plan.Exercises = append(plan.Exercises, pe)
	}
	return plan, nil
}

// describeValidation turns validator errors into one readable sentence per field.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		// drop the root struct name
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// CandidateIDs indexes the exercise ids offered to a generator.
func CandidateIDs(exercises []domain.Exercise) map[int64]bool {
	ids := make(map[int64]bool, len(exercises))
	for _, ex := range exercises {
		ids[ex.ID] = true
	}
	return ids
}
