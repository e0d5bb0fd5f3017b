package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/pkg/logger"
)

var (
	ErrCuisineNotFound = errors.New("cuisine not found")
	ErrCuisineInUse    = errors.New("cuisine is in use by places or branches")
)

type CuisineInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type CuisineService interface {
	Create(input CuisineInput) (*model.Cuisine, error)
	Update(id uint, input CuisineInput) (*model.Cuisine, error)
	Delete(id uint) error
	GetByID(id uint) (*model.Cuisine, error)
	List(filter repository.NamedEntityFilter) (*repository.CuisineListResult, error)
}

type cuisineService struct {
	cuisineRepo repository.CuisineRepository
}

func NewCuisineService(cuisineRepo repository.CuisineRepository) CuisineService {
	return &cuisineService{cuisineRepo: cuisineRepo}
}

// Create inserts a cuisine type, retrying with numbered names when the
// requested one is taken, same as categories.
func (s *cuisineService) Create(input CuisineInput) (*model.Cuisine, error) {
	base := strings.TrimSpace(input.Name)
	if len(base) < 2 {
		return nil, ErrNameTooShort
	}

	var lastErr error
	for attempt := 0; attempt < nameRetryAttempts; attempt++ {
		cuisine := &model.Cuisine{
			Name:        retryName(base, attempt),
			Description: input.Description,
		}

		err := s.cuisineRepo.Create(cuisine)
		if err == nil {
			if attempt > 0 {
				logger.Info("Cuisine name disambiguated", map[string]interface{}{
					"requested": base,
					"stored":    cuisine.Name,
				})
			}
			logger.Info("Cuisine created", map[string]interface{}{
				"cuisine_id": cuisine.ID,
				"name":       cuisine.Name,
			})
			return cuisine, nil
		}
		if !apperrors.IsUniqueViolation(err) {
			logger.Error("Failed to create cuisine", err, map[string]interface{}{
				"name": cuisine.Name,
			})
			return nil, err
		}
		lastErr = err
	}

	logger.Warn("Cuisine name retries exhausted", map[string]interface{}{
		"name":  base,
		"error": lastErr.Error(),
	})
	return nil, ErrNameTaken
}

func (s *cuisineService) Update(id uint, input CuisineInput) (*model.Cuisine, error) {
	cuisine, err := s.cuisineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCuisineNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	cuisine.Name = name
	cuisine.Description = input.Description

	if err := s.cuisineRepo.Update(cuisine); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	logger.Info("Cuisine updated", map[string]interface{}{
		"cuisine_id": cuisine.ID,
	})
	return cuisine, nil
}

func (s *cuisineService) Delete(id uint) error {
	affected, err := s.cuisineRepo.Delete(id)
	if err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return ErrCuisineInUse
		}
		return err
	}
	if affected == 0 {
		return ErrCuisineNotFound
	}

	logger.Info("Cuisine deleted", map[string]interface{}{
		"cuisine_id": id,
	})
	return nil
}

func (s *cuisineService) GetByID(id uint) (*model.Cuisine, error) {
	cuisine, err := s.cuisineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCuisineNotFound
		}
		return nil, err
	}
	return cuisine, nil
}

func (s *cuisineService) List(filter repository.NamedEntityFilter) (*repository.CuisineListResult, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageIndex < 0 {
		filter.PageIndex = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.cuisineRepo.FindPaged(filter)
}
