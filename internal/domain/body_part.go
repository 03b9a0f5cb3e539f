package domain

// BodyPart is an anatomical region the patient can pick (shoulder, knee, ...).
// Reference data, never written by the session flow.
type BodyPart struct {
	ID   int64  `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// MuscleTest is a diagnostic movement tied to exactly one BodyPart.
type MuscleTest struct {
	ID          int64  `bson:"_id" json:"id"`
	BodyPartID  int64  `bson:"bodyPartId" json:"body_part_id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// MuscleTestWithPain is a MuscleTest paired with the rating the patient gave it
// in the current session. Only lives for the duration of one generation.
type MuscleTestWithPain struct {
	MuscleTest
	PainIntensity int `json:"pain_intensity"`
}
