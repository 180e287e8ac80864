package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) GetCounties(c *fiber.Ctx) error {
	counties, err := h.Catalog.Counties()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(counties)
}

func (h *Handlers) GetSubcounties(c *fiber.Ctx) error {
	countyID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid county ID",
		})
	}

	subcounties, err := h.Catalog.Subcounties(uint(countyID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(subcounties)
}

func (h *Handlers) GetRestorationTypes(c *fiber.Ctx) error {
	types, err := h.Catalog.RestorationTypes()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(types)
}
