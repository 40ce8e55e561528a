package db

import (
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Brand{},
		&model.Hashtag{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductProperty{},
		&model.Review{},
		&model.Promo{},
		&model.Order{},
		&model.OrderItem{},
		&model.Shipping{},
		&model.Service{},
		&model.ServiceImage{},
		&model.Reservation{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
