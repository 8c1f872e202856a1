package models

import "github.com/google/uuid"

const RoleAdministrator = "administrator"

type Administrator struct {
	Base
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null;unique" json:"email"`
	Password string `gorm:"not null" json:"-"`
	About    string `gorm:"type:text" json:"about"`

	Quizzes []Quiz `gorm:"foreignKey:AdministratorID" json:"quizzes,omitempty"`
}

// Principal is the authenticated administrator a request acts on behalf of.
type Principal struct {
	AdministratorID uuid.UUID
}
