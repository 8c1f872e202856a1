package models

import "github.com/google/uuid"

type Question struct {
	Base
	Text   string    `gorm:"type:text;not null" json:"text"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`

	Options []Option `gorm:"foreignKey:QuestionID" json:"options"`
}

type Option struct {
	Base
	Text       string    `gorm:"type:text;not null" json:"option"`
	IsCorrect  bool      `gorm:"default:false" json:"is_correct"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
}
