package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hari-dev-003/Achieve/app/model"
)

// respondErr maps the error taxonomy to HTTP statuses at the edge.
func respondErr(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, model.ErrAuthFailure):
		status = fiber.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, model.ErrPreconditionFailed):
		status = fiber.StatusConflict
	case errors.Is(err, model.ErrExternalService):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(model.ErrorResponse{
		Success: false,
		Message: err.Error(),
	})
}
