package handlers

import (
	"github.com/ardhilink/ardhilink-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handlers) GetNotifications(c *fiber.Ctx) error {
	notifications, err := h.Notifications.List(middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(notifications)
}

func (h *Handlers) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}

	if err := h.Notifications.MarkRead(middleware.GetPrincipal(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
