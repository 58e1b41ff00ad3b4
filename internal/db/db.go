package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := dedupeBusinessHours(db); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.BarberService{},
		&models.BusinessHours{},
		&models.Appointment{},
		&models.WaitingListEntry{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// dedupeBusinessHours mantém o menor id por dia da semana, senão o índice
// único de weekday não sobe em bases antigas.
func dedupeBusinessHours(db *gorm.DB) error {
	if !db.Migrator().HasTable(&models.BusinessHours{}) {
		return nil
	}

	err := db.Exec(`
        DELETE FROM business_hours a
        USING business_hours b
        WHERE a.weekday = b.weekday
          AND a.id > b.id
    `).Error
	if err != nil {
		return fmt.Errorf("dedupe business_hours: %w", err)
	}
	return nil
}
