package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/anjiri1684/aptitude_quiz/documents"
	"github.com/anjiri1684/aptitude_quiz/middleware"
	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/anjiri1684/aptitude_quiz/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler serves the HTTP API. Nil optional services disable their routes' work
// but not the routes.
type Handler struct {
	Admins    *services.AdminService
	Quizzes   *services.QuizService
	Answers   *services.AnswerService
	Results   *services.ResultService
	Generator *services.QuestionGenerator
	Documents *services.DocumentService
	Reports   *services.ReportService
	Hub       *websocket.Hub

	JWTSecret     string
	CloudinaryURL string
}

// ErrorHandler writes every error in the {"status","code","message"} shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrResultExists),
		errors.Is(err, documents.ErrUnsupportedFormat):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrParticipantNotInQuiz),
		errors.Is(err, models.ErrQuestionNotInQuiz),
		errors.Is(err, models.ErrOptionNotForQuestion),
		errors.Is(err, models.ErrQuizNotFound),
		errors.Is(err, models.ErrAdministratorNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrEmailTaken):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, models.ErrGenerationMalformed):
		return fiber.StatusBadRequest, "The generated questions were malformed, please try again"
	case errors.Is(err, models.ErrGenerationUnavailable):
		return fiber.StatusForbidden, "Question generation is unavailable right now, please try again"
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cannot parse JSON", models.ErrValidation)
	}
	return nil
}

func principal(c *fiber.Ctx) (models.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return models.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Missing or malformed JWT")
	}
	return p, nil
}

func quizIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid quiz id", models.ErrValidation)
	}
	return id, nil
}
