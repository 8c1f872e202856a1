package models

import "github.com/google/uuid"

const (
	EventAnswerRecorded = "answer_recorded"
	EventResultCreated  = "result_created"
)

// QuizEvent is pushed to administrators watching a quiz live.
type QuizEvent struct {
	Type    string      `json:"type"`
	QuizID  uuid.UUID   `json:"quiz_id"`
	Payload interface{} `json:"payload"`
}
