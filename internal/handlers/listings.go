package handlers

import (
	"strconv"

	"github.com/ardhilink/ardhilink-api/internal/middleware"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handlers) GetListings(c *fiber.Ctx) error {
	filters := models.ListingFilters{
		RestorationType: c.Query("restoration_type"),
	}
	if raw := c.Query("county"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid county filter",
			})
		}
		countyID := uint(id)
		filters.CountyID = &countyID
	}
	if raw := c.Query("min_size"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid min_size filter",
			})
		}
		filters.MinSizeAcres = &v
	}
	if raw := c.Query("max_size"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid max_size filter",
			})
		}
		filters.MaxSizeAcres = &v
	}

	listings, err := h.Listings.List(middleware.GetPrincipal(c), filters)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listings)
}

func (h *Handlers) GetListing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	listing, err := h.Listings.Get(middleware.GetPrincipal(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listing)
}

func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var req models.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	listing, err := h.Listings.Create(middleware.GetPrincipal(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	var req models.UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	listing, err := h.Listings.Update(middleware.GetPrincipal(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listing)
}

func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	if err := h.Listings.SoftDelete(middleware.GetPrincipal(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
