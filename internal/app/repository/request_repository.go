package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/pkg/logger"
)

// RequestFilter selects a page of add requests. An empty Status keeps the
// store-side default (pending); StatusAll removes the predicate entirely.
type RequestFilter struct {
	PageIndex int
	PageSize  int
	Status    string
	Search    string
}

// StatusAll disables status filtering in a RequestFilter.
const StatusAll = "all"

type PlaceAddListResult struct {
	Rows  []model.PlaceAddRequest
	Total int64
}

type BranchAddListResult struct {
	Rows  []model.BranchAddRequest
	Total int64
}

// QueueStats summarizes one moderation queue for the digest job.
type QueueStats struct {
	Pending       int64
	OldestPending *time.Time
}

type RequestRepository interface {
	CreatePlaceAdd(request *model.PlaceAddRequest) error
	CreateBranchAdd(request *model.BranchAddRequest) error
	FindPlaceAddByID(id string) (*model.PlaceAddRequest, error)
	FindBranchAddByID(id string) (*model.BranchAddRequest, error)
	FindPlaceAddPaged(filter RequestFilter) (*PlaceAddListResult, error)
	FindBranchAddPaged(filter RequestFilter) (*BranchAddListResult, error)
	PlaceAddQueueStats() (*QueueStats, error)
	BranchAddQueueStats() (*QueueStats, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreatePlaceAdd(request *model.PlaceAddRequest) error {
	logger.Debug("Creating place-add request in database", map[string]interface{}{
		"author_id": request.AuthorID,
	})
	if err := r.db.Create(request).Error; err != nil {
		logger.Error("Failed to create place-add request", err, nil)
		return err
	}
	return nil
}

func (r *requestRepository) CreateBranchAdd(request *model.BranchAddRequest) error {
	logger.Debug("Creating branch-add request in database", map[string]interface{}{
		"author_id": request.AuthorID,
		"place_id":  request.PlaceID,
	})
	if err := r.db.Create(request).Error; err != nil {
		logger.Error("Failed to create branch-add request", err, nil)
		return err
	}
	return nil
}

func (r *requestRepository) FindPlaceAddByID(id string) (*model.PlaceAddRequest, error) {
	var request model.PlaceAddRequest
	if err := r.db.Preload("Author").Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindBranchAddByID(id string) (*model.BranchAddRequest, error) {
	var request model.BranchAddRequest
	if err := r.db.Preload("Author").Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindPlaceAddPaged(filter RequestFilter) (*PlaceAddListResult, error) {
	query := r.db.Model(&model.PlaceAddRequest{})

	if filter.Status != StatusAll {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		// OR across the proposal's denormalized name fields
		query = query.Where(
			fmt.Sprintf(
				"LOWER(%s) LIKE LOWER(?) OR LOWER(%s) LIKE LOWER(?) OR LOWER(%s) LIKE LOWER(?) OR LOWER(%s) LIKE LOWER(?)",
				r.proposalField("proposed_place", "name"),
				r.proposalField("proposed_branch", "name"),
				r.proposalField("proposed_branch", "city"),
				r.proposalField("proposed_branch", "country"),
			),
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count place-add requests", err, nil)
		return nil, err
	}

	var rows []model.PlaceAddRequest
	if err := query.Preload("Author").
		Order("created_at DESC").
		Offset(filter.PageIndex * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		logger.Error("Failed to find place-add requests", err, nil)
		return nil, err
	}

	return &PlaceAddListResult{Rows: rows, Total: total}, nil
}

func (r *requestRepository) FindBranchAddPaged(filter RequestFilter) (*BranchAddListResult, error) {
	query := r.db.Model(&model.BranchAddRequest{})

	if filter.Status != StatusAll {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", r.proposalField("proposed_branch", "name")),
			like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count branch-add requests", err, nil)
		return nil, err
	}

	var rows []model.BranchAddRequest
	if err := query.Preload("Author").Preload("Place").
		Order("created_at DESC").
		Offset(filter.PageIndex * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		logger.Error("Failed to find branch-add requests", err, nil)
		return nil, err
	}

	return &BranchAddListResult{Rows: rows, Total: total}, nil
}

func (r *requestRepository) PlaceAddQueueStats() (*QueueStats, error) {
	return r.queueStats(&model.PlaceAddRequest{})
}

func (r *requestRepository) BranchAddQueueStats() (*QueueStats, error) {
	return r.queueStats(&model.BranchAddRequest{})
}

func (r *requestRepository) queueStats(m interface{}) (*QueueStats, error) {
	stats := &QueueStats{}

	if err := r.db.Model(m).
		Where("status = ?", model.RequestStatusPending).
		Count(&stats.Pending).Error; err != nil {
		return nil, err
	}

	if stats.Pending > 0 {
		var oldest struct {
			CreatedAt time.Time
		}
		if err := r.db.Model(m).
			Where("status = ?", model.RequestStatusPending).
			Order("created_at ASC").
			Limit(1).
			Scan(&oldest).Error; err != nil {
			return nil, err
		}
		stats.OldestPending = &oldest.CreatedAt
	}

	return stats, nil
}

// proposalField builds the SQL expression extracting a JSON field from a
// proposal column. Production runs on Postgres; the in-memory test store is
// SQLite, whose JSON operator differs.
func (r *requestRepository) proposalField(column, field string) string {
	if r.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("%s->>'%s'", column, field)
	}
	return fmt.Sprintf("json_extract(%s, '$.%s')", column, field)
}
