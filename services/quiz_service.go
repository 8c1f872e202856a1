package services

import (
	"context"
	"fmt"
	"log"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/utils"
	"github.com/google/uuid"
)

type OptionInput struct {
	Option    string `json:"option" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text    string        `json:"text" validate:"required"`
	Options []OptionInput `json:"options" validate:"required,min=2,dive"`
}

type ParticipantInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CreateQuizInput struct {
	Title        string             `json:"title" validate:"required"`
	Description  string             `json:"description"`
	Instructions string             `json:"instructions"`
	Duration     int                `json:"duration" validate:"required,gt=0"`
	Date         string             `json:"date" validate:"required"`
	Questions    []QuestionInput    `json:"questions" validate:"dive"`
	Participants []ParticipantInput `json:"participants" validate:"dive"`
}

type UpdateQuizInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	Duration     int    `json:"duration" validate:"required,gt=0"`
	Date         string `json:"date" validate:"required"`
}

type AddParticipantsInput struct {
	Participants []ParticipantInput `json:"participants" validate:"required,min=1,dive"`
}

// Dispatcher sends quiz invitations to participants.
type Dispatcher interface {
	Dispatch(ctx context.Context, quiz models.Quiz) DispatchReport
}

type QuizService struct {
	store      QuizStore
	cache      ViewCache
	dispatcher Dispatcher
}

func NewQuizService(store QuizStore, cache ViewCache, dispatcher Dispatcher) *QuizService {
	return &QuizService{store: store, cache: cache, dispatcher: dispatcher}
}

func (s *QuizService) CreateQuiz(ctx context.Context, p models.Principal, in CreateQuizInput) (models.Quiz, error) {
	if err := validate.Struct(in); err != nil {
		return models.Quiz{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}
	date, err := utils.ParseQuizDate(in.Date)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	quiz := models.Quiz{
		Title:           in.Title,
		Description:     in.Description,
		Instructions:    in.Instructions,
		Duration:        in.Duration,
		Date:            date,
		AdministratorID: p.AdministratorID,
		Questions:       make([]models.Question, 0, len(in.Questions)),
		Participants:    newParticipants(in.Participants),
	}
	for _, q := range in.Questions {
		question := models.Question{Text: q.Text, Options: make([]models.Option, 0, len(q.Options))}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.Option{Text: o.Option, IsCorrect: o.IsCorrect})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.store.CreateQuiz(ctx, &quiz); err != nil {
		return models.Quiz{}, err
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context, p models.Principal) ([]models.Quiz, error) {
	return s.store.ListQuizzes(ctx, p.AdministratorID)
}

// GetQuiz returns the owned quiz with every recorded answer attached.
func (s *QuizService) GetQuiz(ctx context.Context, p models.Principal, quizID uuid.UUID) (models.Quiz, error) {
	quiz, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID)
	if err != nil {
		return models.Quiz{}, err
	}
	answers, err := s.store.ListAnswers(ctx, quiz.ID)
	if err != nil {
		return models.Quiz{}, err
	}
	quiz.Answers = answers
	return quiz, nil
}

func (s *QuizService) ListAnswers(ctx context.Context, p models.Principal, quizID uuid.UUID) ([]models.Answer, error) {
	if _, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID); err != nil {
		return nil, err
	}
	return s.store.ListAnswers(ctx, quizID)
}

func (s *QuizService) ListResults(ctx context.Context, p models.Principal, quizID uuid.UUID) ([]models.Result, error) {
	if _, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID); err != nil {
		return nil, err
	}
	return s.store.ListResults(ctx, quizID)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, p models.Principal, quizID uuid.UUID, in UpdateQuizInput) (models.Quiz, error) {
	if err := validate.Struct(in); err != nil {
		return models.Quiz{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}
	date, err := utils.ParseQuizDate(in.Date)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	quiz, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID)
	if err != nil {
		return models.Quiz{}, err
	}
	quiz.Title = in.Title
	quiz.Description = in.Description
	quiz.Instructions = in.Instructions
	quiz.Duration = in.Duration
	quiz.Date = date
	if err := s.store.UpdateQuiz(ctx, &quiz); err != nil {
		return models.Quiz{}, err
	}
	s.invalidate(ctx, quiz.ID)
	return quiz, nil
}

// PublishQuiz opens the quiz to participants and mails their invitations.
// Mail failures are reported, not returned.
func (s *QuizService) PublishQuiz(ctx context.Context, p models.Principal, quizID uuid.UUID) (models.Quiz, DispatchReport, error) {
	quiz, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID)
	if err != nil {
		return models.Quiz{}, DispatchReport{}, err
	}
	if err := s.store.SetQuizPublished(ctx, quiz.ID, true); err != nil {
		return models.Quiz{}, DispatchReport{}, err
	}
	quiz.IsPublished = true
	s.invalidate(ctx, quiz.ID)

	var report DispatchReport
	if s.dispatcher != nil {
		report = s.dispatcher.Dispatch(ctx, quiz)
	}
	return quiz, report, nil
}

func (s *QuizService) UnpublishQuiz(ctx context.Context, p models.Principal, quizID uuid.UUID) (models.Quiz, error) {
	quiz, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID)
	if err != nil {
		return models.Quiz{}, err
	}
	if err := s.store.SetQuizPublished(ctx, quiz.ID, false); err != nil {
		return models.Quiz{}, err
	}
	quiz.IsPublished = false
	s.invalidate(ctx, quiz.ID)
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, p models.Principal, quizID uuid.UUID) error {
	if _, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID); err != nil {
		return err
	}
	if err := s.store.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}
	s.invalidate(ctx, quizID)
	return nil
}

func (s *QuizService) AddParticipants(ctx context.Context, p models.Principal, quizID uuid.UUID, in AddParticipantsInput) ([]models.Participant, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}
	if _, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID); err != nil {
		return nil, err
	}
	return s.store.AddParticipants(ctx, quizID, newParticipants(in.Participants))
}

func (s *QuizService) Stats(ctx context.Context, p models.Principal) (models.Stats, error) {
	return s.store.Stats(ctx, p.AdministratorID)
}

// ParticipantView returns the quiz as the invited participant sees it. Only
// published quizzes are visible, and the publish flag is read on every call.
func (s *QuizService) ParticipantView(ctx context.Context, quizID, participantID uuid.UUID) (models.ParticipantQuizView, error) {
	if quizID == uuid.Nil || participantID == uuid.Nil {
		return models.ParticipantQuizView{}, fmt.Errorf("%w: quizId and participantId are required", models.ErrValidation)
	}
	participant, err := s.store.FindParticipantInQuiz(ctx, quizID, participantID)
	if err != nil {
		return models.ParticipantQuizView{}, err
	}
	published, err := s.store.IsQuizPublished(ctx, quizID)
	if err != nil {
		return models.ParticipantQuizView{}, err
	}
	if !published {
		s.invalidate(ctx, quizID)
		return models.ParticipantQuizView{}, models.ErrQuizNotFound
	}

	load := func(ctx context.Context) (models.ParticipantQuizView, error) {
		quiz, err := s.store.FindQuiz(ctx, quizID)
		if err != nil {
			return models.ParticipantQuizView{}, err
		}
		if !quiz.IsPublished {
			return models.ParticipantQuizView{}, models.ErrQuizNotFound
		}
		return models.NewParticipantQuizView(quiz, models.Participant{}), nil
	}

	var view models.ParticipantQuizView
	if s.cache != nil {
		view, err = s.cache.Get(ctx, quizID, load)
	} else {
		view, err = load(ctx)
	}
	if err != nil {
		return models.ParticipantQuizView{}, err
	}
	view.Participant = models.ParticipantSummary{ID: participant.ID, Name: participant.Name, Email: participant.Email}
	return view, nil
}

func (s *QuizService) invalidate(ctx context.Context, quizID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, quizID); err != nil {
		log.Printf("⚠️ Failed to invalidate cached view for quiz %s: %v", quizID, err)
	}
}

func newParticipants(in []ParticipantInput) []models.Participant {
	participants := make([]models.Participant, 0, len(in))
	for _, p := range in {
		participants = append(participants, models.Participant{Name: p.Name, Email: p.Email})
	}
	return participants
}

// Authorize reports ErrQuizNotFound unless the principal owns the quiz.
func (s *QuizService) Authorize(ctx context.Context, p models.Principal, quizID uuid.UUID) error {
	_, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID)
	return err
}
