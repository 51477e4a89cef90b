package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/logger"
	"newsroom/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the schema.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// one connection keeps in-memory databases alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("db: enable foreign keys: %w", err)
		}
	}

	logger.Get().Info().Str("driver", cfg.Driver).Msg("database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.News{},
	)
	if err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	logger.Get().Info().Msg("database migration completed")
	return nil
}

// Ping checks that the database answers within the context deadline.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

var defaultCategories = []models.Category{
	{Title: "Politics", Description: "Government, elections and policy"},
	{Title: "Economy", Description: "Markets, business and budgets"},
	{Title: "Technology", Description: "Software, hardware and science"},
	{Title: "Sports", Description: "Results and stories from the field"},
}

// SeedCategories inserts the default categories when the table is empty.
func SeedCategories(conn *gorm.DB) error {
	log := logger.Get()

	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Msg("categories already seeded, skipping")
		return nil
	}

	var errs []error
	for _, c := range defaultCategories {
		c := c
		if err := conn.Create(&c).Error; err != nil {
			log.Error().Err(err).Str("category", c.Title).Msg("failed to seed category")
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Info().Int("count", len(defaultCategories)).Msg("initial categories created")
	return nil
}
