package routes

import (
	"github.com/ardhilink/ardhilink-api/internal/handlers"
	"github.com/ardhilink/ardhilink-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handlers) {
	api := app.Group("/api")

	api.Post("/register", h.Register)
	api.Post("/login", h.Login)

	// Reference data is public
	api.Get("/counties", h.GetCounties)
	api.Get("/counties/:id/subcounties", h.GetSubcounties)
	api.Get("/restoration-types", h.GetRestorationTypes)

	protected := api.Group("/", middleware.Protected(h.JWTSecret))

	protected.Get("/profile", h.GetProfile)
	protected.Put("/profile", h.UpdateProfile)
	protected.Post("/device-token", h.RegisterDeviceToken)

	lands := protected.Group("/lands")
	lands.Get("/", h.GetListings)
	lands.Post("/", h.CreateListing)
	lands.Get("/:id", h.GetListing)
	lands.Put("/:id", h.UpdateListing)
	lands.Delete("/:id", h.DeleteListing)

	matches := protected.Group("/match-requests")
	matches.Get("/", h.GetMatchRequests)
	matches.Post("/", h.CreateMatchRequest)
	matches.Get("/:id", h.GetMatchRequest)
	matches.Post("/:id/status", h.UpdateMatchRequestStatus)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.GetNotifications)
	notifications.Post("/:id/read", h.MarkNotificationRead)
}
