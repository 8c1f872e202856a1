package handlers

import (
	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req services.SignUpInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.Admins.SignUp(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Administrator registered successfully",
		"administrator": admin,
	})
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req services.SignInInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	token, admin, err := h.Admins.SignIn(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token, "administrator": admin})
}
