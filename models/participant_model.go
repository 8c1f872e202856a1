package models

import "github.com/google/uuid"

// Participant is invited to at most one quiz. A nil QuizID means unassigned.
type Participant struct {
	Base
	Name   string     `gorm:"size:255;not null" json:"name"`
	Email  string     `gorm:"size:255;not null" json:"email"`
	QuizID *uuid.UUID `gorm:"type:uuid;index" json:"quiz_id"`
}
