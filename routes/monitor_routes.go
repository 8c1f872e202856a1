package routes

import (
	"github.com/anjiri1684/aptitude_quiz/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MonitorRoutes(app *fiber.App, h *handlers.Handler) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/quizzes/:quizId", websocket.New(h.ServeQuizMonitor))
}
