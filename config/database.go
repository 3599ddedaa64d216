package config

import (
	"fmt"
	"log/slog"

	"unibordima/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB mở kết nối Postgres theo DATABASE_URL
func ConnectDB(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	log.Info("Successfully connected to db")
	return db, nil
}

// Migrate tạo/cập nhật bảng và index
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.Listing{},
		&models.Review{},
		&models.SavedListing{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Full-text index chỉ có trên Postgres
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE INDEX IF NOT EXISTS idx_listings_search ON listings USING GIN (to_tsvector('simple', search_text))`,
		).Error; err != nil {
			return fmt.Errorf("migrate search index: %w", err)
		}
	}
	return nil
}
