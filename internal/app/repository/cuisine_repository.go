package repository

import (
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/logger"
)

type CuisineListResult struct {
	Rows  []model.Cuisine
	Total int64
}

type CuisineRepository interface {
	Create(cuisine *model.Cuisine) error
	Update(cuisine *model.Cuisine) error
	Delete(id uint) (int64, error)
	FindByID(id uint) (*model.Cuisine, error)
	FindPaged(filter NamedEntityFilter) (*CuisineListResult, error)
}

type cuisineRepository struct {
	db *gorm.DB
}

func NewCuisineRepository(db *gorm.DB) CuisineRepository {
	return &cuisineRepository{db: db}
}

func (r *cuisineRepository) Create(cuisine *model.Cuisine) error {
	if err := r.db.Create(cuisine).Error; err != nil {
		logger.Error("Failed to create cuisine in database", err, map[string]interface{}{
			"name": cuisine.Name,
		})
		return err
	}
	return nil
}

func (r *cuisineRepository) Update(cuisine *model.Cuisine) error {
	if err := r.db.Save(cuisine).Error; err != nil {
		logger.Error("Failed to update cuisine in database", err, map[string]interface{}{
			"cuisine_id": cuisine.ID,
		})
		return err
	}
	return nil
}

func (r *cuisineRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&model.Cuisine{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *cuisineRepository) FindByID(id uint) (*model.Cuisine, error) {
	var cuisine model.Cuisine
	if err := r.db.First(&cuisine, id).Error; err != nil {
		return nil, err
	}
	return &cuisine, nil
}

func (r *cuisineRepository) FindPaged(filter NamedEntityFilter) (*CuisineListResult, error) {
	query := r.db.Model(&model.Cuisine{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count cuisines", err, nil)
		return nil, err
	}

	var rows []model.Cuisine
	if err := query.Order("name ASC").
		Offset(filter.PageIndex * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		logger.Error("Failed to find cuisines", err, nil)
		return nil, err
	}

	return &CuisineListResult{Rows: rows, Total: total}, nil
}
