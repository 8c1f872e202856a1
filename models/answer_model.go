package models

import "github.com/google/uuid"

type Answer struct {
	Base
	QuizID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_slot" json:"quiz_id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_slot" json:"participant_id"`
	QuestionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_slot" json:"question_id"`
	OptionID      uuid.UUID `gorm:"type:uuid;not null" json:"option_id"`
	IsCorrect     bool      `gorm:"default:false" json:"is_correct"`

	Participant *Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Question    *Question    `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Option      *Option      `gorm:"foreignKey:OptionID" json:"option,omitempty"`
}

// Result is a snapshot of a participant's score, taken once.
type Result struct {
	Base
	QuizID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_result_owner" json:"quiz_id"`
	ParticipantID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_result_owner" json:"participant_id"`
	QuestionsAttempted int       `gorm:"not null;default:0" json:"questions_attempted"`
	CorrectAnswers     int       `gorm:"not null;default:0" json:"correct_answers"`

	Participant *Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
}
