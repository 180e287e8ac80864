package handlers

import (
	"github.com/ardhilink/ardhilink-api/internal/middleware"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.Auth.Register(req)
	if err != nil {
		return fail(c, err)
	}

	token, err := middleware.GenerateToken(h.JWTSecret, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{
		Token: token,
		User:  *user,
	})
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, err := middleware.GenerateToken(h.JWTSecret, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(models.AuthResponse{
		Token: token,
		User:  *user,
	})
}

func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	user, err := h.Profile.Get(middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.Profile.Update(middleware.GetPrincipal(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handlers) RegisterDeviceToken(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	if err := h.Profile.RegisterDeviceToken(middleware.GetPrincipal(c), req.Token); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
