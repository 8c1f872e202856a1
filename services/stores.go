package services

import (
	"context"
	"time"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type AdministratorStore interface {
	CreateAdministrator(ctx context.Context, admin *models.Administrator) error
	FindAdministratorByEmail(ctx context.Context, email string) (models.Administrator, error)
	FindAdministrator(ctx context.Context, id uuid.UUID) (models.Administrator, error)
	ListAdministrators(ctx context.Context) ([]models.Administrator, error)
	UpdateAdministratorProfile(ctx context.Context, id uuid.UUID, name, about string) (models.Administrator, error)
	UpdateAdministratorPassword(ctx context.Context, id uuid.UUID, hash string) error
}

type AnswerStore interface {
	FindParticipantInQuiz(ctx context.Context, quizID, participantID uuid.UUID) (models.Participant, error)
	FindQuestionInQuiz(ctx context.Context, quizID, questionID uuid.UUID) (models.Question, error)
	FindOptionForQuestion(ctx context.Context, questionID, optionID uuid.UUID) (models.Option, error)
	UpsertAnswer(ctx context.Context, answer models.Answer) (models.Answer, error)
}

type ResultStore interface {
	FindParticipantInQuiz(ctx context.Context, quizID, participantID uuid.UUID) (models.Participant, error)
	ResultExists(ctx context.Context, quizID, participantID uuid.UUID) (bool, error)
	CountAnswers(ctx context.Context, quizID, participantID uuid.UUID) (attempted, correct int64, err error)
	InsertResultIfAbsent(ctx context.Context, result *models.Result) (bool, error)
}

type QuizStore interface {
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	ListQuizzes(ctx context.Context, administratorID uuid.UUID) ([]models.Quiz, error)
	FindQuiz(ctx context.Context, quizID uuid.UUID) (models.Quiz, error)
	FindQuizForAdministrator(ctx context.Context, administratorID, quizID uuid.UUID) (models.Quiz, error)
	FindParticipantInQuiz(ctx context.Context, quizID, participantID uuid.UUID) (models.Participant, error)
	IsQuizPublished(ctx context.Context, quizID uuid.UUID) (bool, error)
	UpdateQuiz(ctx context.Context, quiz *models.Quiz) error
	SetQuizPublished(ctx context.Context, quizID uuid.UUID, published bool) error
	DeleteQuiz(ctx context.Context, quizID uuid.UUID) error
	AddParticipants(ctx context.Context, quizID uuid.UUID, participants []models.Participant) ([]models.Participant, error)
	ListAnswers(ctx context.Context, quizID uuid.UUID) ([]models.Answer, error)
	ListResults(ctx context.Context, quizID uuid.UUID) ([]models.Result, error)
	Stats(ctx context.Context, administratorID uuid.UUID) (models.Stats, error)
}

type CompletionStore interface {
	MarkQuizzesCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventPublisher receives quiz activity for live monitoring. Publish must not block.
type EventPublisher interface {
	Publish(event models.QuizEvent)
}

// ViewCache holds the participant-facing rendering of a published quiz.
type ViewCache interface {
	Get(ctx context.Context, quizID uuid.UUID, load func(ctx context.Context) (models.ParticipantQuizView, error)) (models.ParticipantQuizView, error)
	Invalidate(ctx context.Context, quizID uuid.UUID) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(models.QuizEvent) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
