package models

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrAdministratorNotFound = errors.New("administrator not found")
	ErrQuizNotFound          = errors.New("quiz not found")
	ErrParticipantNotInQuiz  = errors.New("participant not found for quiz")
	ErrQuestionNotInQuiz     = errors.New("question not found for quiz")
	ErrOptionNotForQuestion  = errors.New("option not found for question")

	ErrResultExists       = errors.New("result already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrGenerationUnavailable = errors.New("question generation unavailable, please try again")
	ErrGenerationMalformed   = errors.New("generated questions were malformed, please try again")
)
