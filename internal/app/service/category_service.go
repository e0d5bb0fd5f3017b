package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/pkg/logger"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is in use by places")
	ErrNameTaken        = errors.New("name is already taken, try another name")
)

// nameRetryAttempts bounds the disambiguation loop on duplicate names:
// the caller's name, then two numbered variants.
const nameRetryAttempts = 3

type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IconName    *string `json:"icon_name"`
}

type CategoryService interface {
	Create(input CategoryInput) (*model.Category, error)
	Update(id uint, input CategoryInput) (*model.Category, error)
	Delete(id uint) error
	GetByID(id uint) (*model.Category, error)
	List(filter repository.NamedEntityFilter) (*repository.CategoryListResult, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// retryName produces the candidate for an attempt: the base name as-is,
// then "name 2", "name 3".
func retryName(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s %d", base, attempt+1)
}

// Create inserts a category, disambiguating the name on collision. A
// duplicate slug or name triggers up to two numbered retries before the
// conflict is reported to the caller.
func (s *categoryService) Create(input CategoryInput) (*model.Category, error) {
	base := strings.TrimSpace(input.Name)
	if len(base) < 2 {
		return nil, ErrNameTooShort
	}

	var lastErr error
	for attempt := 0; attempt < nameRetryAttempts; attempt++ {
		category := &model.Category{
			Name:        retryName(base, attempt),
			Description: input.Description,
			IconName:    input.IconName,
		}

		err := s.categoryRepo.Create(category)
		if err == nil {
			if attempt > 0 {
				logger.Info("Category name disambiguated", map[string]interface{}{
					"requested": base,
					"stored":    category.Name,
				})
			}
			logger.Info("Category created", map[string]interface{}{
				"category_id": category.ID,
				"name":        category.Name,
			})
			return category, nil
		}
		if !apperrors.IsUniqueViolation(err) {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"name": category.Name,
			})
			return nil, err
		}
		lastErr = err
	}

	logger.Warn("Category name retries exhausted", map[string]interface{}{
		"name":  base,
		"error": lastErr.Error(),
	})
	return nil, ErrNameTaken
}

func (s *categoryService) Update(id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	category.Name = name
	category.Description = input.Description
	category.IconName = input.IconName

	if err := s.categoryRepo.Update(category); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	logger.Info("Category updated", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

// Delete refuses to remove a category still referenced by places; the
// restrict constraint reports that as a foreign key violation.
func (s *categoryService) Delete(id uint) error {
	affected, err := s.categoryRepo.Delete(id)
	if err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (s *categoryService) GetByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(filter repository.NamedEntityFilter) (*repository.CategoryListResult, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageIndex < 0 {
		filter.PageIndex = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.categoryRepo.FindPaged(filter)
}
