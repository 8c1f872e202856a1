package handlers

import (
	"fmt"
	"io"
	"time"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GenerateQuestions(c *fiber.Ctx) error {
	var req services.GenerateQuestionsInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	questions, err := h.Generator.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"questions": questions})
}

// ExtractText reads the multipart "file" field and returns its plain text.
func (h *Handler) ExtractText(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: a file upload is required", models.ErrValidation)
	}
	f, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	extraction, err := h.Documents.Extract(c.UserContext(), header.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(extraction)
}

// GenerateUploadSignature creates a secure signature for a frontend upload.
func (h *Handler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.CloudinaryURL == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "File uploads are not configured")
	}
	signature, err := services.SignUpload(h.CloudinaryURL, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(signature)
}
