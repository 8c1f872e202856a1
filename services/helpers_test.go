package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anjiri1684/aptitude_quiz/database"
	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/notifications"
	"github.com/google/uuid"
)

func newStore(t *testing.T) *database.Store {
	t.Helper()
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database.NewStore(db)
}

func createAdministrator(t *testing.T, store *database.Store, email string) models.Principal {
	t.Helper()
	admin := models.Administrator{Name: "Ada Lovelace", Email: email, Password: "unused"}
	if err := store.CreateAdministrator(context.Background(), &admin); err != nil {
		t.Fatalf("create administrator: %v", err)
	}
	return models.Principal{AdministratorID: admin.ID}
}

func sampleQuizInput() CreateQuizInput {
	return CreateQuizInput{
		Title:        "Numeracy",
		Description:  "Basic arithmetic",
		Instructions: "Pick one option per question",
		Duration:     20,
		Date:         "2026-10-20",
		Questions: []QuestionInput{
			{Text: "2 + 2", Options: []OptionInput{{Option: "4", IsCorrect: true}, {Option: "5"}}},
			{Text: "3 + 3", Options: []OptionInput{{Option: "6", IsCorrect: true}, {Option: "7"}}},
		},
		Participants: []ParticipantInput{
			{Name: "Grace", Email: "grace@example.com"},
			{Name: "Alan", Email: "alan@example.com"},
		},
	}
}

func findQuestion(t *testing.T, quiz models.Quiz, text string) models.Question {
	t.Helper()
	for _, q := range quiz.Questions {
		if q.Text == text {
			return q
		}
	}
	t.Fatalf("question %q not found", text)
	return models.Question{}
}

func findOption(t *testing.T, q models.Question, text string) models.Option {
	t.Helper()
	for _, o := range q.Options {
		if o.Text == text {
			return o
		}
	}
	t.Fatalf("option %q not found", text)
	return models.Option{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.QuizEvent
}

func (r *recordingPublisher) Publish(e models.QuizEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

type recordingMailer struct {
	mu     sync.Mutex
	sent   []notifications.Message
	failTo string
}

func (m *recordingMailer) Send(ctx context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ToEmail == m.failTo {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type countingCache struct {
	views       map[uuid.UUID]models.ParticipantQuizView
	loads       int
	invalidated int
}

func newCountingCache() *countingCache {
	return &countingCache{views: map[uuid.UUID]models.ParticipantQuizView{}}
}

func (c *countingCache) Get(ctx context.Context, quizID uuid.UUID, load func(ctx context.Context) (models.ParticipantQuizView, error)) (models.ParticipantQuizView, error) {
	if v, ok := c.views[quizID]; ok {
		return v, nil
	}
	c.loads++
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.views[quizID] = v
	return v, nil
}

func (c *countingCache) Invalidate(ctx context.Context, quizID uuid.UUID) error {
	c.invalidated++
	delete(c.views, quizID)
	return nil
}

// staleCache keeps serving entries after Invalidate, like a write that raced a delete.
type staleCache struct {
	*countingCache
}

func (c staleCache) Invalidate(ctx context.Context, quizID uuid.UUID) error {
	c.invalidated++
	return nil
}
