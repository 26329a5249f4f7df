package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/helper"
)

// AuthRequired resolves the bearer token to a full session (claims plus the
// profile row) before any protected handler runs. Handlers therefore never
// observe a half-resolved identity.
func AuthRequired(users repo.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := strings.TrimSpace(c.Get("Authorization"))
		if bearer == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Token required",
			})
		}

		if len(bearer) < 7 || !strings.EqualFold(bearer[:7], "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Invalid bearer token format",
			})
		}
		token := strings.TrimSpace(bearer[7:])

		claims, err := helper.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Invalid token",
			})
		}

		if claims.Type != "access" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Invalid token type",
			})
		}

		if claims.UserID == uuid.Nil || claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Incomplete token claims",
			})
		}

		profile, err := users.FindByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Account no longer exists",
			})
		}

		c.Locals("session", &model.Session{
			UserID:  profile.ID,
			Email:   profile.Email,
			Role:    profile.Role,
			Profile: profile,
		})

		return c.Next()
	}
}

// RoleRequired gates a route group on the resolved role. A mismatch answers
// 401 rather than redirecting to the caller's own area; the client treats it
// as a send-to-login signal.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Session not resolved",
			})
		}

		if session.Role != role {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "This area requires the " + role + " role",
			})
		}

		return c.Next()
	}
}

func GetSession(c *fiber.Ctx) *model.Session {
	session, _ := c.Locals("session").(*model.Session)
	return session
}
