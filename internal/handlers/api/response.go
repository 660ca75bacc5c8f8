package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"ghfavorites/internal/favorites"
	"ghfavorites/internal/lookup"
	"ghfavorites/internal/models"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// serviceError maps favorites and lookup errors to HTTP responses.
func serviceError(c fiber.Ctx, err error) error {
	var te *lookup.TransportError
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &te):
		return jsonError(c, fiber.StatusBadGateway, err.Error())
	case errors.Is(err, favorites.ErrEmptyKey):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, favorites.ErrNoActiveResult):
		return jsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, favorites.ErrNotFavorite):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrMissingLogin):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "failed to update favorites")
	}
}
