package handlers

import (
	"github.com/ardhilink/ardhilink-api/internal/middleware"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handlers) CreateMatchRequest(c *fiber.Ctx) error {
	var req models.CreateMatchRequest
	if err := c.BodyParser(&req); err != nil || req.LandListingID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "landListingId is required",
		})
	}

	request, err := h.Matches.Create(middleware.GetPrincipal(c), req.LandListingID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *Handlers) GetMatchRequests(c *fiber.Ctx) error {
	requests, err := h.Matches.ListForUser(middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(requests)
}

func (h *Handlers) GetMatchRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match request ID",
		})
	}

	request, err := h.Matches.Get(middleware.GetPrincipal(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

func (h *Handlers) UpdateMatchRequestStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match request ID",
		})
	}

	var req models.UpdateMatchStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := h.Matches.UpdateStatus(middleware.GetPrincipal(c), id, req.Action)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}
