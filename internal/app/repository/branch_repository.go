package repository

import (
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/logger"
)

// MainFilter narrows a branch listing by the is_main_branch flag.
type MainFilter string

const (
	MainAll     MainFilter = "all"
	MainOnly    MainFilter = "main"
	NonMainOnly MainFilter = "non_main"
)

type BranchFilter struct {
	PageIndex int
	PageSize  int
	Search    string
	PlaceID   string
	Main      MainFilter
	Active    ActiveFilter
}

type BranchListResult struct {
	Rows  []model.Branch
	Total int64
}

type BranchRepository interface {
	Create(branch *model.Branch) error
	Update(branch *model.Branch) error
	UpdateActive(id string, isActive bool) (int64, error)
	Delete(id string) (int64, error)
	FindByID(id string) (*model.Branch, error)
	FindPaged(filter BranchFilter) (*BranchListResult, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *model.Branch) error {
	logger.Debug("Creating branch in database", map[string]interface{}{
		"name":     branch.Name,
		"place_id": branch.PlaceID,
	})

	if err := r.db.Create(branch).Error; err != nil {
		logger.Error("Failed to create branch in database", err, map[string]interface{}{
			"name":     branch.Name,
			"place_id": branch.PlaceID,
		})
		return err
	}
	return nil
}

func (r *branchRepository) Update(branch *model.Branch) error {
	if err := r.db.Save(branch).Error; err != nil {
		logger.Error("Failed to update branch in database", err, map[string]interface{}{
			"branch_id": branch.ID,
		})
		return err
	}
	return nil
}

func (r *branchRepository) UpdateActive(id string, isActive bool) (int64, error) {
	result := r.db.Model(&model.Branch{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if result.Error != nil {
		logger.Error("Failed to update branch active flag", result.Error, map[string]interface{}{
			"branch_id": id,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *branchRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Branch{})
	if result.Error != nil {
		logger.Error("Failed to delete branch from database", result.Error, map[string]interface{}{
			"branch_id": id,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *branchRepository) FindByID(id string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.Preload("Place").Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindPaged(filter BranchFilter) (*BranchListResult, error) {
	query := r.db.Model(&model.Branch{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?)", like, like)
	}
	if filter.PlaceID != "" {
		query = query.Where("place_id = ?", filter.PlaceID)
	}
	switch filter.Main {
	case MainOnly:
		query = query.Where("is_main_branch = ?", true)
	case NonMainOnly:
		query = query.Where("is_main_branch = ?", false)
	}
	switch filter.Active {
	case ActiveOnly:
		query = query.Where("is_active = ?", true)
	case InactiveOnly:
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count branches", err, nil)
		return nil, err
	}

	var rows []model.Branch
	if err := query.Preload("Place").
		Order("created_at DESC").
		Offset(filter.PageIndex * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		logger.Error("Failed to find branches", err, nil)
		return nil, err
	}

	return &BranchListResult{Rows: rows, Total: total}, nil
}
