package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuizAccessLink is the participant's entry point to a quiz on the frontend.
func QuizAccessLink(frontendURL string, quizID, participantID uuid.UUID) string {
	return fmt.Sprintf("%s/quiz?quizId=%s&participantId=%s", strings.TrimRight(frontendURL, "/"), quizID, participantID)
}

var quizDateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseQuizDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseQuizDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range quizDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
}

func FormatQuizDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
