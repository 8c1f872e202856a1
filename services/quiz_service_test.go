package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
)

func TestCreateQuizValidation(t *testing.T) {
	store := newStore(t)
	principal := createAdministrator(t, store, "ada@example.com")
	svc := NewQuizService(store, nil, nil)

	bad := sampleQuizInput()
	bad.Date = "next tuesday"
	if _, err := svc.CreateQuiz(context.Background(), principal, bad); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad date, got %v", err)
	}

	bad = sampleQuizInput()
	bad.Questions[0].Options = bad.Questions[0].Options[:1]
	if _, err := svc.CreateQuiz(context.Background(), principal, bad); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for single option, got %v", err)
	}

	bad = sampleQuizInput()
	bad.Participants[0].Email = "nope"
	if _, err := svc.CreateQuiz(context.Background(), principal, bad); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
}

func TestQuizOwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	owner := createAdministrator(t, store, "owner@example.com")
	intruder := createAdministrator(t, store, "intruder@example.com")
	svc := NewQuizService(store, nil, nil)

	quiz, err := svc.CreateQuiz(ctx, owner, sampleQuizInput())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := svc.GetQuiz(ctx, intruder, quiz.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("get: expected ErrQuizNotFound, got %v", err)
	}
	if _, _, err := svc.PublishQuiz(ctx, intruder, quiz.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("publish: expected ErrQuizNotFound, got %v", err)
	}
	if err := svc.DeleteQuiz(ctx, intruder, quiz.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("delete: expected ErrQuizNotFound, got %v", err)
	}
	list, err := svc.ListQuizzes(ctx, intruder)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("intruder should see no quizzes, got %d", len(list))
	}
}

func TestPublishQuizDispatchesInvitationsAndSurvivesFailures(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	principal := createAdministrator(t, store, "ada@example.com")
	mailer := &recordingMailer{failTo: "alan@example.com"}
	cache := newCountingCache()
	svc := NewQuizService(store, cache, NewInvitationDispatcher(mailer, "https://quiz.example.com"))

	quiz, err := svc.CreateQuiz(ctx, principal, sampleQuizInput())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	published, report, err := svc.PublishQuiz(ctx, principal, quiz.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.IsPublished {
		t.Fatalf("expected quiz to be published")
	}
	if report.Sent != 1 || report.Failed != 1 {
		t.Fatalf("expected 1 sent and 1 failed, got %+v", report)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one delivered mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	grace := quiz.Participants[0]
	wantLink := "https://quiz.example.com/quiz?quizId=" + quiz.ID.String() + "&amp;participantId=" + grace.ID.String()
	if msg.ToEmail != "grace@example.com" || !strings.Contains(msg.HTMLContent, wantLink) {
		t.Fatalf("invitation missing access link %q", wantLink)
	}
	if !strings.Contains(msg.HTMLContent, "Ada Lovelace") || !strings.Contains(msg.HTMLContent, "October 20, 2026") {
		t.Fatalf("invitation missing administrator or date")
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected publish to invalidate the cached view")
	}

	reloaded, err := store.FindQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsPublished {
		t.Fatalf("publish must persist even when a mail fails")
	}
}

func TestParticipantViewRequiresPublishedQuiz(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	principal := createAdministrator(t, store, "ada@example.com")
	cache := newCountingCache()
	svc := NewQuizService(store, cache, nil)

	quiz, err := svc.CreateQuiz(ctx, principal, sampleQuizInput())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	grace := quiz.Participants[0]

	if _, err := svc.ParticipantView(ctx, quiz.ID, grace.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("expected unpublished quiz to be hidden, got %v", err)
	}
	if _, err := svc.ParticipantView(ctx, quiz.ID, uuid.New()); !errors.Is(err, models.ErrParticipantNotInQuiz) {
		t.Fatalf("expected ErrParticipantNotInQuiz, got %v", err)
	}

	if _, _, err := svc.PublishQuiz(ctx, principal, quiz.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	loadsBefore := cache.loads
	view, err := svc.ParticipantView(ctx, quiz.ID, grace.ID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Participant.ID != grace.ID || len(view.Questions) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}

	alan := quiz.Participants[1]
	other, err := svc.ParticipantView(ctx, quiz.ID, alan.ID)
	if err != nil {
		t.Fatalf("second view: %v", err)
	}
	if other.Participant.ID != alan.ID {
		t.Fatalf("cached view leaked another participant: %+v", other.Participant)
	}
	if cache.loads != loadsBefore+1 {
		t.Fatalf("expected one cache load across participants, got %d", cache.loads-loadsBefore)
	}

	if _, err := svc.UnpublishQuiz(ctx, principal, quiz.ID); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, err := svc.ParticipantView(ctx, quiz.ID, grace.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("expected unpublished quiz to be hidden again, got %v", err)
	}
}

func TestUpdateAddParticipantsAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	principal := createAdministrator(t, store, "ada@example.com")
	svc := NewQuizService(store, nil, nil)

	quiz, err := svc.CreateQuiz(ctx, principal, sampleQuizInput())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	updated, err := svc.UpdateQuiz(ctx, principal, quiz.ID, UpdateQuizInput{
		Title: "Numeracy II", Duration: 45, Date: "2026-11-02T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Numeracy II" || updated.Duration != 45 {
		t.Fatalf("update not applied: %+v", updated)
	}

	added, err := svc.AddParticipants(ctx, principal, quiz.ID, AddParticipantsInput{
		Participants: []ParticipantInput{{Name: "Barbara", Email: "barbara@example.com"}},
	})
	if err != nil {
		t.Fatalf("add participants: %v", err)
	}
	if len(added) != 1 || added[0].QuizID == nil || *added[0].QuizID != quiz.ID {
		t.Fatalf("participant not attached: %+v", added)
	}

	got, err := svc.GetQuiz(ctx, principal, quiz.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Numeracy II" || len(got.Participants) != 3 {
		t.Fatalf("unexpected quiz after update: title=%q participants=%d", got.Title, len(got.Participants))
	}

	if err := svc.DeleteQuiz(ctx, principal, quiz.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetQuiz(ctx, principal, quiz.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("expected deleted quiz to be gone, got %v", err)
	}
}

func TestParticipantViewHidesUnpublishedQuizEvenWhenCached(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	principal := createAdministrator(t, store, "ada@example.com")
	cache := staleCache{newCountingCache()}
	svc := NewQuizService(store, cache, nil)

	quiz, err := svc.CreateQuiz(ctx, principal, sampleQuizInput())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	grace := quiz.Participants[0]
	if _, _, err := svc.PublishQuiz(ctx, principal, quiz.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := svc.ParticipantView(ctx, quiz.ID, grace.ID); err != nil {
		t.Fatalf("view: %v", err)
	}
	if _, ok := cache.views[quiz.ID]; !ok {
		t.Fatalf("expected the published view to be cached")
	}

	if _, err := svc.UnpublishQuiz(ctx, principal, quiz.ID); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, ok := cache.views[quiz.ID]; !ok {
		t.Fatalf("expected the stale entry to survive invalidation")
	}
	if _, err := svc.ParticipantView(ctx, quiz.ID, grace.ID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("expected stale cached view to be hidden, got %v", err)
	}
}
