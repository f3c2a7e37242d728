package config

import (
	"os"

	"github.com/sprintnotes/sprintnotes/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Database *gorm.DB

func Connect() error {
	var err error
	dbURL := os.Getenv("DB_URL")
	Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = Migrate(Database)
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}

// Migrate creates the hosted schema: accounts, matching, messaging,
// sharing and the sync mirror.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Message{},
		&models.SharedNote{},
		&models.Document{},
		&models.SyncEvent{},
	)
}
