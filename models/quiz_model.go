package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	Base
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Instructions    string    `gorm:"type:text" json:"instructions"`
	Duration        int       `gorm:"not null" json:"duration"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	IsCompleted     bool      `gorm:"default:false" json:"is_completed"`
	IsPublished     bool      `gorm:"default:false" json:"is_published"`
	AdministratorID uuid.UUID `gorm:"type:uuid;not null;index" json:"administrator_id"`

	Administrator *Administrator `gorm:"foreignKey:AdministratorID" json:"administrator,omitempty"`
	Questions     []Question     `gorm:"foreignKey:QuizID" json:"questions"`
	Participants  []Participant  `gorm:"foreignKey:QuizID" json:"participants"`
	Answers       []Answer       `gorm:"foreignKey:QuizID" json:"answers,omitempty"`
}
