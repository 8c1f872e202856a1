package handlers

import (
	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListAdministrators(c *fiber.Ctx) error {
	admins, err := h.Admins.ListAdministrators(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(admins)
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	admin, err := h.Admins.Profile(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(admin)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req services.UpdateProfileInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.Admins.UpdateProfile(c.UserContext(), p, req)
	if err != nil {
		return err
	}
	return c.JSON(admin)
}

func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req services.ChangePasswordInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.Admins.ChangePassword(c.UserContext(), p, req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (h *Handler) GetStats(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	stats, err := h.Quizzes.Stats(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
