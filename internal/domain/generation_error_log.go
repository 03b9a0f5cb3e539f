package domain

import "time"

// Error codes written to generation_error_logs.
const (
	ErrorCodeSessionCreationFailed = "session_creation_failed"
	ErrorCodeAIGenerationFailed    = "ai_generation_failed"
)

// GenerationErrorLog is an append-only audit row for a failed session or plan generation.
// Nothing in the service reads these back; they are for operators.
type GenerationErrorLog struct {
	ID           string    `bson:"_id" json:"id"`
	ErrorCode    string    `bson:"errorCode" json:"error_code"`
	ErrorMessage string    `bson:"errorMessage" json:"error_message"`
	UserID       string    `bson:"userId" json:"user_id"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}
