package database

import (
	"strings"

	"github.com/ardhilink/ardhilink-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the durable store. PostgreSQL when the URL carries a
// postgres scheme, SQLite otherwise (dev and tests).
func Connect(databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if strings.HasPrefix(databaseURL, "postgres") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.County{},
		&models.Subcounty{},
		&models.RestorationType{},
		&models.LandListing{},
		&models.MatchRequest{},
		&models.Notification{},
	)
}
