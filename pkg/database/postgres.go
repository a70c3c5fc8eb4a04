package database

import (
	"log"
	"time"

	"github.com/tphappenings/campus-events/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(
		&models.Event{},
		&models.Registration{},
		&models.User{},
		&models.NotifyRequest{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Backstop for the one-active-registration-per-user invariant; the
	// service checks it too, but the index wins any race.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_active
		ON registrations (event_id, user_id)
	`).Error; err != nil {
		log.Fatalf("failed to create registration unique index: %v", err)
	}

	return db
}
