package main

import (
	"github.com/ardhilink/ardhilink-api/internal/config"
	"github.com/ardhilink/ardhilink-api/internal/database"
	"github.com/ardhilink/ardhilink-api/internal/handlers"
	"github.com/ardhilink/ardhilink-api/internal/logger"
	"github.com/ardhilink/ardhilink-api/internal/routes"
	"github.com/ardhilink/ardhilink-api/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("failed to seed reference data", zap.Error(err))
	}

	push := services.NewPushService(cfg.FCMServiceAccount, db, log)
	mailer := services.NewMailer(cfg.AWSRegion, cfg.SESSenderEmail, log)

	catalog := services.NewCatalogService(db)
	notifications := services.NewNotificationService(db, push, log)

	h := &handlers.Handlers{
		Auth:          services.NewAuthService(db, catalog),
		Catalog:       catalog,
		Listings:      services.NewListingService(db, catalog),
		Matches:       services.NewMatchService(db, notifications, mailer, log),
		Notifications: notifications,
		Profile:       services.NewProfileService(db, catalog),
		JWTSecret:     cfg.JWTSecret,
	}

	app := fiber.New()
	app.Use(fiberlogger.New())
	routes.Setup(app, h)

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
