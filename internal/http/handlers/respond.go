package handlers

import (
	"errors"

	"jerkco/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// jsonError maps the domain error taxonomy onto the uniform
// {"error": message} body the API promises for every failure.
func jsonError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var verr domain.ValidationError
	var nferr domain.NotFoundError
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
	case errors.As(err, &nferr):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrBadCredentials):
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, false
	}
	return int64(id), true
}
