package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/pkg/logger"
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrNameTooShort  = errors.New("name must be at least 2 characters")
)

type PlaceInput struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"category_id"`
	Tags        []string `json:"tags"`
	CuisineIDs  []uint   `json:"cuisine_ids"`
	IsActive    *bool    `json:"is_active"`
}

type PlaceService interface {
	Create(input PlaceInput) (*model.Place, error)
	Update(id string, input PlaceInput) (*model.Place, error)
	SetActive(id string, isActive bool) error
	Delete(id string) error
	GetByID(id string) (*model.Place, error)
	List(filter repository.PlaceFilter) (*repository.PlaceListResult, error)
}

type placeService struct {
	placeRepo repository.PlaceRepository
}

func NewPlaceService(placeRepo repository.PlaceRepository) PlaceService {
	return &placeService{placeRepo: placeRepo}
}

func (s *placeService) Create(input PlaceInput) (*model.Place, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	place := &model.Place{
		Name:        name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Tags:        input.Tags,
		IsActive:    true,
	}
	if input.IsActive != nil {
		place.IsActive = *input.IsActive
	}

	if err := s.placeRepo.Create(place); err != nil {
		return nil, err
	}

	if len(input.CuisineIDs) > 0 {
		if err := s.placeRepo.ReplaceCuisines(place.ID, input.CuisineIDs); err != nil {
			logger.Error("Failed to link cuisines to place", err, map[string]interface{}{
				"place_id": place.ID,
			})
			return nil, err
		}
	}

	logger.Info("Place created", map[string]interface{}{
		"place_id": place.ID,
		"name":     place.Name,
	})
	return place, nil
}

func (s *placeService) Update(id string, input PlaceInput) (*model.Place, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	place.Name = name
	place.Description = input.Description
	place.CategoryID = input.CategoryID
	place.Tags = input.Tags
	if input.IsActive != nil {
		place.IsActive = *input.IsActive
	}

	if err := s.placeRepo.Update(place); err != nil {
		return nil, err
	}

	if input.CuisineIDs != nil {
		if err := s.placeRepo.ReplaceCuisines(place.ID, input.CuisineIDs); err != nil {
			return nil, err
		}
	}

	logger.Info("Place updated", map[string]interface{}{
		"place_id": place.ID,
	})
	return place, nil
}

func (s *placeService) SetActive(id string, isActive bool) error {
	affected, err := s.placeRepo.UpdateActive(id, isActive)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlaceNotFound
	}

	logger.Info("Place active flag changed", map[string]interface{}{
		"place_id":  id,
		"is_active": isActive,
	})
	return nil
}

// Delete removes a place; its branches and cuisine links go with it.
// Links are cleared explicitly so the delete works the same on databases
// migrated without cascade support.
func (s *placeService) Delete(id string) error {
	if err := s.placeRepo.ReplaceCuisines(id, nil); err != nil {
		return err
	}

	affected, err := s.placeRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlaceNotFound
	}

	logger.Info("Place deleted", map[string]interface{}{
		"place_id": id,
	})
	return nil
}

func (s *placeService) GetByID(id string) (*model.Place, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return place, nil
}

func (s *placeService) List(filter repository.PlaceFilter) (*repository.PlaceListResult, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageIndex < 0 {
		filter.PageIndex = 0
	}
	if filter.Active == "" {
		filter.Active = repository.ActiveAll
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.placeRepo.FindPaged(filter)
}
