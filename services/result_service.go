package services

import (
	"context"
	"fmt"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
)

type CreateResultInput struct {
	QuizID        uuid.UUID `json:"quiz_id" validate:"required"`
	ParticipantID uuid.UUID `json:"participant_id" validate:"required"`
}

type ResultService struct {
	store  ResultStore
	events EventPublisher
}

func NewResultService(store ResultStore, events EventPublisher) *ResultService {
	return &ResultService{store: store, events: publisherOrNoop(events)}
}

// CreateResult scores the participant once. Later calls fail with ErrResultExists
// and leave the stored result untouched.
func (s *ResultService) CreateResult(ctx context.Context, in CreateResultInput) (models.Result, error) {
	if err := validate.Struct(in); err != nil {
		return models.Result{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	if _, err := s.store.FindParticipantInQuiz(ctx, in.QuizID, in.ParticipantID); err != nil {
		return models.Result{}, err
	}

	exists, err := s.store.ResultExists(ctx, in.QuizID, in.ParticipantID)
	if err != nil {
		return models.Result{}, err
	}
	if exists {
		return models.Result{}, models.ErrResultExists
	}

	attempted, correct, err := s.store.CountAnswers(ctx, in.QuizID, in.ParticipantID)
	if err != nil {
		return models.Result{}, err
	}

	result := models.Result{
		QuizID:             in.QuizID,
		ParticipantID:      in.ParticipantID,
		QuestionsAttempted: int(attempted),
		CorrectAnswers:     int(correct),
	}
	inserted, err := s.store.InsertResultIfAbsent(ctx, &result)
	if err != nil {
		return models.Result{}, err
	}
	if !inserted {
		return models.Result{}, models.ErrResultExists
	}

	s.events.Publish(models.QuizEvent{Type: models.EventResultCreated, QuizID: in.QuizID, Payload: result})
	return result, nil
}
