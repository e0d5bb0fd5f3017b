package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/pkg/logger"
)

var ErrBranchNotFound = errors.New("branch not found")

type BranchInput struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name" binding:"required"`
	Description  *string  `json:"description"`
	Phone        *string  `json:"phone"`
	WebsiteURL   *string  `json:"website_url"`
	AddressLine1 *string  `json:"address_line1"`
	AddressLine2 *string  `json:"address_line2"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	Country      *string  `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	PriceRange   *int     `json:"price_range"`
	IsMainBranch bool     `json:"is_main_branch"`
	IsActive     *bool    `json:"is_active"`
}

type BranchService interface {
	Create(input BranchInput) (*model.Branch, error)
	Update(id string, input BranchInput) (*model.Branch, error)
	SetActive(id string, isActive bool) error
	Delete(id string) error
	GetByID(id string) (*model.Branch, error)
	List(filter repository.BranchFilter) (*repository.BranchListResult, error)
}

type branchService struct {
	branchRepo repository.BranchRepository
	placeRepo  repository.PlaceRepository
}

func NewBranchService(branchRepo repository.BranchRepository, placeRepo repository.PlaceRepository) BranchService {
	return &branchService{
		branchRepo: branchRepo,
		placeRepo:  placeRepo,
	}
}

func (s *branchService) Create(input BranchInput) (*model.Branch, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	// The parent must exist before the insert so a bad place id surfaces
	// as a not-found instead of a constraint error.
	if _, err := s.placeRepo.FindByID(input.PlaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	branch := &model.Branch{
		PlaceID:      input.PlaceID,
		Name:         name,
		Description:  input.Description,
		Phone:        input.Phone,
		WebsiteURL:   input.WebsiteURL,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		PriceRange:   input.PriceRange,
		IsMainBranch: input.IsMainBranch,
		IsActive:     true,
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	if err := s.branchRepo.Create(branch); err != nil {
		return nil, err
	}

	logger.Info("Branch created", map[string]interface{}{
		"branch_id": branch.ID,
		"place_id":  branch.PlaceID,
		"name":      branch.Name,
	})
	return branch, nil
}

func (s *branchService) Update(id string, input BranchInput) (*model.Branch, error) {
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	// A branch never moves between places.
	branch.Name = name
	branch.Description = input.Description
	branch.Phone = input.Phone
	branch.WebsiteURL = input.WebsiteURL
	branch.AddressLine1 = input.AddressLine1
	branch.AddressLine2 = input.AddressLine2
	branch.City = input.City
	branch.State = input.State
	branch.PostalCode = input.PostalCode
	branch.Country = input.Country
	branch.Latitude = input.Latitude
	branch.Longitude = input.Longitude
	branch.PriceRange = input.PriceRange
	branch.IsMainBranch = input.IsMainBranch
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	if err := s.branchRepo.Update(branch); err != nil {
		return nil, err
	}

	logger.Info("Branch updated", map[string]interface{}{
		"branch_id": branch.ID,
	})
	return branch, nil
}

func (s *branchService) SetActive(id string, isActive bool) error {
	affected, err := s.branchRepo.UpdateActive(id, isActive)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBranchNotFound
	}

	logger.Info("Branch active flag changed", map[string]interface{}{
		"branch_id": id,
		"is_active": isActive,
	})
	return nil
}

func (s *branchService) Delete(id string) error {
	affected, err := s.branchRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBranchNotFound
	}

	logger.Info("Branch deleted", map[string]interface{}{
		"branch_id": id,
	})
	return nil
}

func (s *branchService) GetByID(id string) (*model.Branch, error) {
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return branch, nil
}

func (s *branchService) List(filter repository.BranchFilter) (*repository.BranchListResult, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageIndex < 0 {
		filter.PageIndex = 0
	}
	if filter.Active == "" {
		filter.Active = repository.ActiveAll
	}
	if filter.Main == "" {
		filter.Main = repository.MainAll
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.branchRepo.FindPaged(filter)
}
