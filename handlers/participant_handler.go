package handlers

import (
	"fmt"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetParticipantQuiz is the public entry point behind the emailed access link.
func (h *Handler) GetParticipantQuiz(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Query("quizId"))
	if err != nil {
		return fmt.Errorf("%w: quizId must be a valid id", models.ErrValidation)
	}
	participantID, err := uuid.Parse(c.Query("participantId"))
	if err != nil {
		return fmt.Errorf("%w: participantId must be a valid id", models.ErrValidation)
	}
	view, err := h.Quizzes.ParticipantView(c.UserContext(), quizID, participantID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (h *Handler) SubmitAnswer(c *fiber.Ctx) error {
	var req services.SubmitAnswerInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	answer, err := h.Answers.SubmitAnswer(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(answer)
}

func (h *Handler) CreateResult(c *fiber.Ctx) error {
	var req services.CreateResultInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.Results.CreateResult(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
