package services

import (
	"context"
	"fmt"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
)

type SubmitAnswerInput struct {
	QuizID        uuid.UUID `json:"quiz_id" validate:"required"`
	ParticipantID uuid.UUID `json:"participant_id" validate:"required"`
	QuestionID    uuid.UUID `json:"question_id" validate:"required"`
	OptionID      uuid.UUID `json:"option_id" validate:"required"`
}

type AnswerService struct {
	store  AnswerStore
	events EventPublisher
}

func NewAnswerService(store AnswerStore, events EventPublisher) *AnswerService {
	return &AnswerService{store: store, events: publisherOrNoop(events)}
}

// SubmitAnswer records the participant's choice for a question, replacing any
// earlier choice. Correctness is taken from the chosen option.
func (s *AnswerService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (models.Answer, error) {
	if err := validate.Struct(in); err != nil {
		return models.Answer{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	if _, err := s.store.FindParticipantInQuiz(ctx, in.QuizID, in.ParticipantID); err != nil {
		return models.Answer{}, err
	}
	if _, err := s.store.FindQuestionInQuiz(ctx, in.QuizID, in.QuestionID); err != nil {
		return models.Answer{}, err
	}
	option, err := s.store.FindOptionForQuestion(ctx, in.QuestionID, in.OptionID)
	if err != nil {
		return models.Answer{}, err
	}

	answer, err := s.store.UpsertAnswer(ctx, models.Answer{
		QuizID:        in.QuizID,
		ParticipantID: in.ParticipantID,
		QuestionID:    in.QuestionID,
		OptionID:      option.ID,
		IsCorrect:     option.IsCorrect,
	})
	if err != nil {
		return models.Answer{}, err
	}

	s.events.Publish(models.QuizEvent{
		Type:   models.EventAnswerRecorded,
		QuizID: in.QuizID,
		Payload: map[string]interface{}{
			"participant_id": in.ParticipantID,
			"question_id":    in.QuestionID,
		},
	})
	return answer, nil
}
