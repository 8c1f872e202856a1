package handlers

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/aptitude_quiz/middleware"
	"github.com/anjiri1684/aptitude_quiz/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const monitorAuthTimeout = 10 * time.Second

type monitorMessage struct {
	Type   string    `json:"type"`
	Token  string    `json:"token,omitempty"`
	QuizID uuid.UUID `json:"quiz_id,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// ServeQuizMonitor streams live answer and result events for one quiz. The
// first frame must be {"type":"auth","token":"..."} from the quiz's owner.
func (h *Handler) ServeQuizMonitor(c *websocketcontrib.Conn) {
	defer c.Close()

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		_ = c.WriteJSON(monitorMessage{Type: "error", Error: "invalid quiz id"})
		return
	}

	_ = c.SetReadDeadline(time.Now().Add(monitorAuthTimeout))
	var auth monitorMessage
	if err := c.ReadJSON(&auth); err != nil || auth.Type != "auth" {
		_ = c.WriteJSON(monitorMessage{Type: "error", Error: "authentication required"})
		return
	}
	p, err := middleware.ParseToken(h.JWTSecret, auth.Token)
	if err != nil {
		_ = c.WriteJSON(monitorMessage{Type: "error", Error: "invalid or expired token"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), monitorAuthTimeout)
	err = h.Quizzes.Authorize(ctx, p, quizID)
	cancel()
	if err != nil {
		_ = c.WriteJSON(monitorMessage{Type: "error", Error: "quiz not found"})
		return
	}
	_ = c.SetReadDeadline(time.Time{})

	if err := c.WriteJSON(monitorMessage{Type: "subscribed", QuizID: quizID}); err != nil {
		return
	}

	client := &websocket.Client{AdministratorID: p.AdministratorID, QuizID: quizID, Conn: c}
	h.Hub.Register(client)
	defer h.Hub.Unregister(client)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("Live monitor read error for administrator %s: %v", p.AdministratorID, err)
			}
			return
		}
	}
}
