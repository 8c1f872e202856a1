package routes

import (
	"github.com/anjiri1684/aptitude_quiz/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App, h *handlers.Handler) {
	app.Post("/signup", h.SignUp)
	app.Post("/signin", h.SignIn)
}

// ParticipantRoutes are reached from the emailed access link and carry no token.
func ParticipantRoutes(app *fiber.App, h *handlers.Handler) {
	quiz := app.Group("/quiz")
	quiz.Get("", h.GetParticipantQuiz)
	quiz.Post("/answers", h.SubmitAnswer)
	quiz.Post("/results", h.CreateResult)
}
