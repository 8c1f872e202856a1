package models

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantQuizView is what a participant sees: no correctness flags.
type ParticipantQuizView struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Instructions string                `json:"instructions"`
	Duration     int                   `json:"duration"`
	Date         time.Time             `json:"date"`
	Participant  ParticipantSummary    `json:"participant"`
	Questions    []ParticipantQuestion `json:"questions"`
}

type ParticipantSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ParticipantQuestion struct {
	ID      uuid.UUID           `json:"id"`
	Text    string              `json:"text"`
	Options []ParticipantOption `json:"options"`
}

type ParticipantOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"option"`
}

// NewParticipantQuizView projects a loaded quiz for one participant.
func NewParticipantQuizView(quiz Quiz, participant Participant) ParticipantQuizView {
	view := ParticipantQuizView{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		Instructions: quiz.Instructions,
		Duration:     quiz.Duration,
		Date:         quiz.Date,
		Participant: ParticipantSummary{
			ID:    participant.ID,
			Name:  participant.Name,
			Email: participant.Email,
		},
		Questions: make([]ParticipantQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		pq := ParticipantQuestion{ID: q.ID, Text: q.Text, Options: make([]ParticipantOption, 0, len(q.Options))}
		for _, o := range q.Options {
			pq.Options = append(pq.Options, ParticipantOption{ID: o.ID, Text: o.Text})
		}
		view.Questions = append(view.Questions, pq)
	}
	return view
}

// Stats keys keep the camelCase names the dashboard already consumes.
type Stats struct {
	TotalTestsCreated               int64 `json:"totalTestsCreated"`
	TotalTestsTaken                 int64 `json:"totalTestsTaken"`
	TotalParticipantsCreated        int64 `json:"totalParticipantsCreated"`
	TotalParticipantsTakenTests     int64 `json:"totalParticipantsTakenTests"`
	TotalQuestionsAnsweredCorrectly int64 `json:"totalQuestionsAnsweredCorrectly"`
	TotalTestsPublished             int64 `json:"totalTestsPublished"`
	TotalTestsUnpublished           int64 `json:"totalTestsUnpublished"`
	TotalTestsCompleted             int64 `json:"totalTestsCompleted"`
	TotalParticipantsNotTakenTests  int64 `json:"totalParticipantsNotTakenTests"`
}

// GeneratedQuestion is one item of language model output.
type GeneratedQuestion struct {
	Text    string            `json:"text"`
	Options []GeneratedOption `json:"options"`
}

type GeneratedOption struct {
	Option    string `json:"option"`
	IsCorrect bool   `json:"is_correct"`
}
