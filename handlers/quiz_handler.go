package handlers

import (
	"fmt"

	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req services.CreateQuizInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	quiz, err := h.Quizzes.CreateQuiz(c.UserContext(), p, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (h *Handler) ListQuizzes(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizzes, err := h.Quizzes.ListQuizzes(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

func (h *Handler) GetQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	quiz, err := h.Quizzes.GetQuiz(c.UserContext(), p, quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

func (h *Handler) UpdateQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	var req services.UpdateQuizInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	quiz, err := h.Quizzes.UpdateQuiz(c.UserContext(), p, quizID, req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

func (h *Handler) DeleteQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	if err := h.Quizzes.DeleteQuiz(c.UserContext(), p, quizID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Quiz deleted successfully"})
}

func (h *Handler) PublishQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	quiz, report, err := h.Quizzes.PublishQuiz(c.UserContext(), p, quizID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Quiz published successfully",
		"quiz":        quiz,
		"invitations": report,
	})
}

func (h *Handler) UnpublishQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	quiz, err := h.Quizzes.UnpublishQuiz(c.UserContext(), p, quizID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Quiz unpublished successfully", "quiz": quiz})
}

func (h *Handler) ListQuizAnswers(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	answers, err := h.Quizzes.ListAnswers(c.UserContext(), p, quizID)
	if err != nil {
		return err
	}
	return c.JSON(answers)
}

func (h *Handler) ListQuizResults(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	results, err := h.Quizzes.ListResults(c.UserContext(), p, quizID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

func (h *Handler) AddParticipants(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}
	var req services.AddParticipantsInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	participants, err := h.Quizzes.AddParticipants(c.UserContext(), p, quizID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(participants)
}

// GetQuizReport serves the results report as PDF, or as HTML with ?format=html.
func (h *Handler) GetQuizReport(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := quizIDParam(c)
	if err != nil {
		return err
	}

	if c.Query("format") == "html" {
		page, err := h.Reports.QuizReportHTML(c.UserContext(), p, quizID)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(page)
	}

	pdf, err := h.Reports.QuizReportPDF(c.UserContext(), p, quizID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="quiz-%s-report.pdf"`, quizID))
	return c.Send(pdf)
}
