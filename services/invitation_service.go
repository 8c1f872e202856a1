package services

import (
	"context"
	"log"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/notifications"
	"github.com/anjiri1684/aptitude_quiz/utils"
)

type DispatchReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type InvitationDispatcher struct {
	mailer      notifications.Mailer
	frontendURL string
}

func NewInvitationDispatcher(mailer notifications.Mailer, frontendURL string) *InvitationDispatcher {
	if mailer == nil {
		mailer = notifications.LogMailer{}
	}
	return &InvitationDispatcher{mailer: mailer, frontendURL: frontendURL}
}

// Dispatch mails every participant of the quiz. A failed send is logged and
// counted but never stops the remaining sends.
func (d *InvitationDispatcher) Dispatch(ctx context.Context, quiz models.Quiz) DispatchReport {
	var report DispatchReport
	administratorName := ""
	if quiz.Administrator != nil {
		administratorName = quiz.Administrator.Name
	}

	for _, p := range quiz.Participants {
		html, err := notifications.RenderInvitation(notifications.Invitation{
			ParticipantName:   p.Name,
			QuizAdministrator: administratorName,
			QuizName:          quiz.Title,
			QuizLink:          utils.QuizAccessLink(d.frontendURL, quiz.ID, p.ID),
			QuizDate:          utils.FormatQuizDate(quiz.Date),
		})
		if err == nil {
			err = d.mailer.Send(ctx, notifications.Message{
				ToEmail:     p.Email,
				ToName:      p.Name,
				Subject:     notifications.InvitationSubject,
				HTMLContent: html,
			})
		}
		if err != nil {
			report.Failed++
			log.Printf("🔥 Failed to send invitation for quiz %s to %s: %v", quiz.ID, p.Email, err)
			continue
		}
		report.Sent++
	}

	log.Printf("✅ Invitations for quiz %s dispatched: %d sent, %d failed", quiz.ID, report.Sent, report.Failed)
	return report
}
