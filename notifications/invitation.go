package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/invitation.html
var templateFS embed.FS

var invitationTemplate = template.Must(template.ParseFS(templateFS, "templates/invitation.html"))

const InvitationSubject = "Aptitude Test Invitation"

type Invitation struct {
	ParticipantName   string
	QuizAdministrator string
	QuizName          string
	QuizLink          string
	QuizDate          string
}

func RenderInvitation(inv Invitation) (string, error) {
	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, inv); err != nil {
		return "", fmt.Errorf("render invitation: %w", err)
	}
	return buf.String(), nil
}
