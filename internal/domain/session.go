package domain

import "time"

// Session is the persisted record of one self-assessment.
// TrainingPlan starts empty and is replaced exactly once by the generation pipeline.
type Session struct {
	ID                   int64         `bson:"_id" json:"id"`
	BodyPartID           int64         `bson:"bodyPartId" json:"body_part_id"`
	UserID               string        `bson:"userId" json:"user_id"`
	DisclaimerAcceptedAt time.Time     `bson:"disclaimerAcceptedAt" json:"disclaimer_accepted_at"`
	CreatedAt            time.Time     `bson:"createdAt" json:"created_at"`
	TrainingPlan         TrainingPlan  `bson:"trainingPlan" json:"training_plan"`
	SessionTests         []SessionTest `bson:"sessionTests,omitempty" json:"session_tests"` // joined on read
	FeedbackRating       *int          `bson:"feedbackRating" json:"feedback_rating"`       // owned by the feedback flow
}

// SessionTest is one pain rating row of a session.
type SessionTest struct {
	ID            int64 `bson:"_id" json:"id"`
	SessionID     int64 `bson:"sessionId" json:"session_id"`
	MuscleTestID  int64 `bson:"muscleTestId" json:"muscle_test_id"`
	PainIntensity int   `bson:"painIntensity" json:"pain_intensity"`
}
