// internal/domain/training_plan.go
package domain

import "encoding/json"

// TrainingPlan is the generated artifact stored on a Session.
// The zero value is the "not generated yet" plan and encodes as {} in both JSON and BSON.
type TrainingPlan struct {
	Title       string            `bson:"title,omitempty" json:"title"`
	Description string            `bson:"description,omitempty" json:"description"`
	Warnings    []string          `bson:"warnings,omitempty" json:"warnings"`
	Exercises   []PlannedExercise `bson:"exercises,omitempty" json:"exercises"`
}

// PlannedExercise is one dosed exercise inside a TrainingPlan.
type PlannedExercise struct {
	ID              int64  `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	Description     string `bson:"description" json:"description"`
	Sets            int    `bson:"sets" json:"sets"`
	Reps            int    `bson:"reps" json:"reps"`
	RestTimeSeconds int    `bson:"restTimeSeconds" json:"rest_time_seconds"`
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// IsEmpty reports whether the plan has not been generated yet.
func (p TrainingPlan) IsEmpty() bool {
	return p.Title == "" && p.Description == "" && len(p.Warnings) == 0 && len(p.Exercises) == 0
}

// MarshalJSON renders an empty plan as {} so clients see the same shape the store holds.
func (p TrainingPlan) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("{}"), nil
	}
	type plan TrainingPlan
	out := plan(p)
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return json.Marshal(out)
}
