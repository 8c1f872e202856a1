package middleware

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const principalKey = "principal"

var errNoSigningKey = errors.New("no signing key configured")

// Protected verifies the bearer token. An empty secret rejects every request.
func Protected(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error {
			return jwtError(c, errNoSigningKey)
		}
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	message := "Invalid or expired JWT"
	if err.Error() == "Missing or malformed JWT" {
		message = "Missing or malformed JWT"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"code":    fiber.StatusUnauthorized,
		"message": message,
	})
}

// RequireAdministrator turns the verified token into a models.Principal.
func RequireAdministrator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing or malformed JWT")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		principal, err := principalFromClaims(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func Principal(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals(principalKey).(models.Principal)
	return p, ok
}

// ParseToken verifies a raw token outside the HTTP middleware chain.
func ParseToken(secret, tokenString string) (models.Principal, error) {
	if secret == "" {
		return models.Principal{}, errNoSigningKey
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Principal{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, errors.New("invalid token")
	}
	return principalFromClaims(claims)
}

func principalFromClaims(claims jwt.MapClaims) (models.Principal, error) {
	if role, _ := claims["role"].(string); role != models.RoleAdministrator {
		return models.Principal{}, errors.New("administrator access required")
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return models.Principal{}, errors.New("invalid user id in token")
	}
	return models.Principal{AdministratorID: id}, nil
}
