package db

import (
	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Cuisine{},
		&model.Place{},
		&model.Branch{},
		&model.PlaceCuisine{},
		&model.BranchCuisine{},
		&model.PlaceAddRequest{},
		&model.BranchAddRequest{},
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

// Seed inserts the baseline reference data the dashboard expects.
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}
	if err := seedCuisines(); err != nil {
		logger.Error("Failed to seed cuisines", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := []model.Category{
		{Name: "Restaurant", IconName: strPtr("utensils")},
		{Name: "Cafe", IconName: strPtr("coffee")},
		{Name: "Bakery", IconName: strPtr("croissant")},
		{Name: "Bar", IconName: strPtr("beer")},
		{Name: "Fast Food", IconName: strPtr("burger")},
		{Name: "Juice House", IconName: strPtr("glass-water")},
		{Name: "Cultural Dining", IconName: strPtr("landmark")},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total": len(categories),
	})
	return nil
}

func seedCuisines() error {
	var count int64
	if err := DB.Model(&model.Cuisine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Cuisines already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	cuisines := []model.Cuisine{
		{Name: "Ethiopian"},
		{Name: "Italian"},
		{Name: "Middle Eastern"},
		{Name: "Indian"},
		{Name: "Chinese"},
		{Name: "Burgers"},
		{Name: "Vegan"},
	}

	for _, cuisine := range cuisines {
		if err := DB.Create(&cuisine).Error; err != nil {
			logger.Error("Failed to create cuisine", err, map[string]interface{}{
				"cuisine": cuisine.Name,
			})
			return err
		}
	}

	logger.Info("Cuisines seeded successfully", map[string]interface{}{
		"total": len(cuisines),
	})
	return nil
}

func strPtr(s string) *string {
	return &s
}
