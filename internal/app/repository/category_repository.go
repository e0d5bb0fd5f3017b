package repository

import (
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/logger"
)

type NamedEntityFilter struct {
	PageIndex int
	PageSize  int
	Search    string
}

type CategoryListResult struct {
	Rows  []model.Category
	Total int64
}

type CategoryRepository interface {
	Create(category *model.Category) error
	Update(category *model.Category) error
	Delete(id uint) (int64, error)
	FindByID(id uint) (*model.Category, error)
	FindPaged(filter NamedEntityFilter) (*CategoryListResult, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	// No logging on the duplicate-key path: the caller retries with a
	// disambiguated name and only the final failure is worth reporting.
	return r.db.Create(category).Error
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&model.Category{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindPaged(filter NamedEntityFilter) (*CategoryListResult, error) {
	query := r.db.Model(&model.Category{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count categories", err, nil)
		return nil, err
	}

	var rows []model.Category
	if err := query.Order("name ASC").
		Offset(filter.PageIndex * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		logger.Error("Failed to find categories", err, nil)
		return nil, err
	}

	return &CategoryListResult{Rows: rows, Total: total}, nil
}
