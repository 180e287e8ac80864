// Package handlers adapts the service layer to the HTTP surface.
package handlers

import (
	"errors"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth          *services.AuthService
	Catalog       *services.CatalogService
	Listings      *services.ListingService
	Matches       *services.MatchService
	Notifications *services.NotificationService
	Profile       *services.ProfileService
	JWTSecret     string
}

// fail maps the service error taxonomy onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := fiber.StatusInternalServerError
		switch appErr.Code {
		case apperr.CodeForbidden:
			status = fiber.StatusForbidden
		case apperr.CodeNotFound:
			status = fiber.StatusNotFound
		case apperr.CodeConflict:
			status = fiber.StatusConflict
		case apperr.CodeValidation:
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": appErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong",
	})
}
