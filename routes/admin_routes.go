package routes

import (
	"github.com/anjiri1684/aptitude_quiz/handlers"
	"github.com/anjiri1684/aptitude_quiz/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api", middleware.Protected(h.JWTSecret), middleware.RequireAdministrator())

	api.Get("/users", h.ListAdministrators)
	api.Get("/profile", h.GetProfile)
	api.Put("/profile/update", h.UpdateProfile)
	api.Put("/profile/update-password", h.UpdatePassword)
	api.Get("/stats", h.GetStats)

	quizzes := api.Group("/quizzes")
	quizzes.Get("", h.ListQuizzes)
	quizzes.Post("", h.CreateQuiz)
	quizzes.Get("/:quizId", h.GetQuiz)
	quizzes.Put("/:quizId", h.UpdateQuiz)
	quizzes.Delete("/:quizId", h.DeleteQuiz)
	quizzes.Get("/:quizId/answers", h.ListQuizAnswers)
	quizzes.Get("/:quizId/results", h.ListQuizResults)
	quizzes.Get("/:quizId/report", h.GetQuizReport)
	quizzes.Put("/:quizId/publish", h.PublishQuiz)
	quizzes.Put("/:quizId/unpublish", h.UnpublishQuiz)
	quizzes.Post("/:quizId/participants", h.AddParticipants)

	api.Post("/generate-questions", h.GenerateQuestions)
	api.Post("/extract-text", h.ExtractText)
	api.Get("/uploads/signature", h.GenerateUploadSignature)
}
