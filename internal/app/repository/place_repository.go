package repository

import (
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/logger"
)

// ActiveFilter narrows a listing by the is_active flag.
type ActiveFilter string

const (
	ActiveAll    ActiveFilter = "all"
	ActiveOnly   ActiveFilter = "active"
	InactiveOnly ActiveFilter = "inactive"
)

// PlaceFilter selects a page of places.
type PlaceFilter struct {
	PageIndex  int // 0-based
	PageSize   int
	Search     string
	CategoryID *uint
	Active     ActiveFilter
}

// PlaceListResult is one page plus the exact total count.
type PlaceListResult struct {
	Rows  []model.Place
	Total int64
}

type PlaceRepository interface {
	Create(place *model.Place) error
	Update(place *model.Place) error
	UpdateActive(id string, isActive bool) (int64, error)
	Delete(id string) (int64, error)
	FindByID(id string) (*model.Place, error)
	FindPaged(filter PlaceFilter) (*PlaceListResult, error)
	ReplaceCuisines(placeID string, cuisineIDs []uint) error
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(place *model.Place) error {
	logger.Debug("Creating place in database", map[string]interface{}{
		"name": place.Name,
	})

	if err := r.db.Create(place).Error; err != nil {
		logger.Error("Failed to create place in database", err, map[string]interface{}{
			"name": place.Name,
		})
		return err
	}
	return nil
}

func (r *placeRepository) Update(place *model.Place) error {
	if err := r.db.Save(place).Error; err != nil {
		logger.Error("Failed to update place in database", err, map[string]interface{}{
			"place_id": place.ID,
		})
		return err
	}
	return nil
}

// UpdateActive flips only the is_active column and reports how many rows
// matched, so callers can distinguish a missing id.
func (r *placeRepository) UpdateActive(id string, isActive bool) (int64, error) {
	result := r.db.Model(&model.Place{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if result.Error != nil {
		logger.Error("Failed to update place active flag", result.Error, map[string]interface{}{
			"place_id": id,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *placeRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Place{})
	if result.Error != nil {
		logger.Error("Failed to delete place from database", result.Error, map[string]interface{}{
			"place_id": id,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *placeRepository) FindByID(id string) (*model.Place, error) {
	var place model.Place
	if err := r.db.Preload("Category").Where("id = ?", id).First(&place).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) FindPaged(filter PlaceFilter) (*PlaceListResult, error) {
	query := r.db.Model(&model.Place{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	switch filter.Active {
	case ActiveOnly:
		query = query.Where("is_active = ?", true)
	case InactiveOnly:
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count places", err, nil)
		return nil, err
	}

	var rows []model.Place
	if err := query.Preload("Category").
		Order("created_at DESC").
		Offset(filter.PageIndex * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		logger.Error("Failed to find places", err, nil)
		return nil, err
	}

	return &PlaceListResult{Rows: rows, Total: total}, nil
}

// ReplaceCuisines swaps a place's cuisine links for the given set.
func (r *placeRepository) ReplaceCuisines(placeID string, cuisineIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", placeID).Delete(&model.PlaceCuisine{}).Error; err != nil {
			return err
		}
		for _, cuisineID := range cuisineIDs {
			link := model.PlaceCuisine{PlaceID: placeID, CuisineID: cuisineID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
