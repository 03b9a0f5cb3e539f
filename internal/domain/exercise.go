// internal/domain/exercise.go
package domain

// Exercise is a prescribable movement attached to one MuscleTest.
type Exercise struct {
	ID           int64  `bson:"_id" json:"id"`
	MuscleTestID int64  `bson:"muscleTestId" json:"muscle_test_id"`
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Description  string `bson:"description" json:"description"`

	// Images is filled by the repository with a $lookup on exercise_images; it is not stored on the exercise document.
	Images []ExerciseImage `bson:"images,omitempty" json:"images"`
}

// ExerciseImage points at an illustration in object storage.
type ExerciseImage struct {
	ID         int64  `bson:"_id" json:"id"`
	ExerciseID int64  `bson:"exerciseId" json:"exercise_id"`
	ObjectKey  string `bson:"objectKey" json:"-"`
	URL        string `bson:"-" json:"url,omitempty"` // presigned GET URL, filled on read
	Caption    string `bson:"caption,omitempty" json:"caption,omitempty"`
	Position   int    `bson:"position" json:"position"`
}

// DisplayName is the name shown in a plan. Older catalog rows only carry a description.
func (e Exercise) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Description
}
