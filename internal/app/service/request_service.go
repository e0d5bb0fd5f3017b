package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/pkg/logger"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrAlreadyReviewed   = errors.New("request has already been reviewed")
	ErrInvalidAction     = errors.New("invalid review action")
	ErrInvalidProposal   = errors.New("invalid proposal")
	ErrProposalPlaceGone = errors.New("proposed place does not exist")
)

// ReviewAction is what a moderator decided about a pending request.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// ReviewOutcome reports the rows materialized by an approval.
type ReviewOutcome struct {
	PlaceID  string `json:"place_id,omitempty"`
	BranchID string `json:"branch_id,omitempty"`
}

type RequestService interface {
	ListPlaceAdd(filter repository.RequestFilter) (*repository.PlaceAddListResult, error)
	ListBranchAdd(filter repository.RequestFilter) (*repository.BranchAddListResult, error)
	ReviewPlaceAdd(id string, action ReviewAction, reason, reviewerID string) (*ReviewOutcome, error)
	ReviewBranchAdd(id string, action ReviewAction, reason, reviewerID string) (*ReviewOutcome, error)
	SubmitPlaceAdd(authorID string, proposedPlace, proposedBranch model.JSONMap) (*model.PlaceAddRequest, error)
	SubmitBranchAdd(authorID, placeID string, proposedBranch model.JSONMap) (*model.BranchAddRequest, error)
}

type requestService struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
	placeRepo   repository.PlaceRepository
}

// NewRequestService builds the moderation-queue service. The raw DB handle
// is needed because an approval spans several statements that must commit
// or roll back together.
func NewRequestService(db *gorm.DB, requestRepo repository.RequestRepository, placeRepo repository.PlaceRepository) RequestService {
	return &requestService{
		db:          db,
		requestRepo: requestRepo,
		placeRepo:   placeRepo,
	}
}

func (s *requestService) ListPlaceAdd(filter repository.RequestFilter) (*repository.PlaceAddListResult, error) {
	normalizeRequestFilter(&filter)
	return s.requestRepo.FindPlaceAddPaged(filter)
}

func (s *requestService) ListBranchAdd(filter repository.RequestFilter) (*repository.BranchAddListResult, error) {
	normalizeRequestFilter(&filter)
	return s.requestRepo.FindBranchAddPaged(filter)
}

func normalizeRequestFilter(filter *repository.RequestFilter) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageIndex < 0 {
		filter.PageIndex = 0
	}
	if filter.Status == "" {
		filter.Status = string(model.RequestStatusPending)
	}
	filter.Search = strings.TrimSpace(filter.Search)
}

// ReviewPlaceAdd applies a moderator decision to a place-add request.
// Approval materializes the proposal into a place (and optionally its first
// branch) inside one transaction with the status flip, so a failed insert
// leaves the request pending and a concurrent second review finds no
// pending row to claim.
func (s *requestService) ReviewPlaceAdd(id string, action ReviewAction, reason, reviewerID string) (*ReviewOutcome, error) {
	logger.Info("Reviewing place-add request", map[string]interface{}{
		"request_id": id,
		"action":     action,
		"reviewer":   reviewerID,
	})

	switch action {
	case ActionReject:
		if err := s.rejectInTx(&model.PlaceAddRequest{}, id, reason, reviewerID); err != nil {
			return nil, err
		}
		return &ReviewOutcome{}, nil
	case ActionApprove:
		return s.approvePlaceAdd(id, reviewerID)
	default:
		return nil, ErrInvalidAction
	}
}

func (s *requestService) ReviewBranchAdd(id string, action ReviewAction, reason, reviewerID string) (*ReviewOutcome, error) {
	logger.Info("Reviewing branch-add request", map[string]interface{}{
		"request_id": id,
		"action":     action,
		"reviewer":   reviewerID,
	})

	switch action {
	case ActionReject:
		if err := s.rejectInTx(&model.BranchAddRequest{}, id, reason, reviewerID); err != nil {
			return nil, err
		}
		return &ReviewOutcome{}, nil
	case ActionApprove:
		return s.approveBranchAdd(id, reviewerID)
	default:
		return nil, ErrInvalidAction
	}
}

// claimPending flips a pending request to the target status, guarded by
// the current status. Zero affected rows means the request is gone or was
// already reviewed; the follow-up read tells the two apart.
func claimPending(tx *gorm.DB, m interface{}, id string, status model.RequestStatus, reviewerID string, reason *string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}
	if reason != nil {
		updates["rejection_reason"] = *reason
	}

	result := tx.Model(m).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRequestNotFound
		}
		return ErrAlreadyReviewed
	}
	return nil
}

func (s *requestService) rejectInTx(m interface{}, id, reason, reviewerID string) error {
	var reasonPtr *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		reasonPtr = &trimmed
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return claimPending(tx, m, id, model.RequestStatusRejected, reviewerID, reasonPtr)
	})
	if err != nil {
		logger.Warn("Reject failed", map[string]interface{}{
			"request_id": id,
			"error":      err.Error(),
		})
		return err
	}

	logger.Info("Request rejected", map[string]interface{}{
		"request_id": id,
		"reviewer":   reviewerID,
	})
	return nil
}

func (s *requestService) approvePlaceAdd(id, reviewerID string) (*ReviewOutcome, error) {
	outcome := &ReviewOutcome{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := claimPending(tx, &model.PlaceAddRequest{}, id, model.RequestStatusApproved, reviewerID, nil); err != nil {
			return err
		}

		var request model.PlaceAddRequest
		if err := tx.Where("id = ?", id).First(&request).Error; err != nil {
			return err
		}

		// Proposals arrive unvalidated, so every field gets a fallback.
		place := &model.Place{
			Name:        request.ProposedPlace.String("name", "Untitled"),
			Description: request.ProposedPlace.StringPtr("description"),
			CategoryID:  request.ProposedPlace.Int("category_id"),
			OwnerID:     request.AuthorID,
			IsActive:    true,
		}
		if err := tx.Create(place).Error; err != nil {
			return err
		}
		outcome.PlaceID = place.ID

		if len(request.ProposedBranch) > 0 {
			branch := &model.Branch{
				PlaceID:      place.ID,
				Name:         request.ProposedBranch.String("name", request.ProposedPlace.String("name", "Branch")),
				AddressLine1: request.ProposedBranch.StringPtr("address_line1"),
				AddressLine2: request.ProposedBranch.StringPtr("address_line2"),
				City:         request.ProposedBranch.StringPtr("city"),
				Country:      request.ProposedBranch.StringPtr("country"),
				Latitude:     request.ProposedBranch.Float("latitude"),
				Longitude:    request.ProposedBranch.Float("longitude"),
				IsMainBranch: true, // a new place's first branch is always main
				IsActive:     true,
			}
			if err := tx.Create(branch).Error; err != nil {
				return err
			}
			outcome.BranchID = branch.ID
		}

		return nil
	})
	if err != nil {
		logger.Error("Place-add approval failed", err, map[string]interface{}{
			"request_id": id,
		})
		return nil, err
	}

	logger.Info("Place-add request approved", map[string]interface{}{
		"request_id": id,
		"place_id":   outcome.PlaceID,
		"branch_id":  outcome.BranchID,
		"reviewer":   reviewerID,
	})
	return outcome, nil
}

func (s *requestService) approveBranchAdd(id, reviewerID string) (*ReviewOutcome, error) {
	outcome := &ReviewOutcome{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := claimPending(tx, &model.BranchAddRequest{}, id, model.RequestStatusApproved, reviewerID, nil); err != nil {
			return err
		}

		var request model.BranchAddRequest
		if err := tx.Where("id = ?", id).First(&request).Error; err != nil {
			return err
		}

		branch := &model.Branch{
			PlaceID:      request.PlaceID,
			Name:         request.ProposedBranch.String("name", "Branch"),
			AddressLine1: request.ProposedBranch.StringPtr("address_line1"),
			AddressLine2: request.ProposedBranch.StringPtr("address_line2"),
			City:         request.ProposedBranch.StringPtr("city"),
			Country:      request.ProposedBranch.StringPtr("country"),
			Latitude:     request.ProposedBranch.Float("latitude"),
			Longitude:    request.ProposedBranch.Float("longitude"),
			IsMainBranch: request.ProposedBranch.Bool("is_main_branch", false),
			IsActive:     true,
		}
		if err := tx.Create(branch).Error; err != nil {
			return err
		}
		outcome.BranchID = branch.ID

		return nil
	})
	if err != nil {
		logger.Error("Branch-add approval failed", err, map[string]interface{}{
			"request_id": id,
		})
		return nil, err
	}

	logger.Info("Branch-add request approved", map[string]interface{}{
		"request_id": id,
		"branch_id":  outcome.BranchID,
		"reviewer":   reviewerID,
	})
	return outcome, nil
}

// SubmitPlaceAdd records a user proposal for a new place. The proposal
// shape is checked here so obviously broken submissions never reach the
// queue; approval still defaults defensively.
func (s *requestService) SubmitPlaceAdd(authorID string, proposedPlace, proposedBranch model.JSONMap) (*model.PlaceAddRequest, error) {
	if err := validatePlaceProposal(proposedPlace); err != nil {
		return nil, err
	}
	if len(proposedBranch) > 0 {
		if err := validateBranchProposal(proposedBranch, false); err != nil {
			return nil, err
		}
	}

	request := &model.PlaceAddRequest{
		AuthorID:       &authorID,
		ProposedPlace:  proposedPlace,
		ProposedBranch: proposedBranch,
		Status:         model.RequestStatusPending,
	}
	if err := s.requestRepo.CreatePlaceAdd(request); err != nil {
		return nil, err
	}

	logger.Info("Place-add request submitted", map[string]interface{}{
		"request_id": request.ID,
		"author_id":  authorID,
	})
	return request, nil
}

func (s *requestService) SubmitBranchAdd(authorID, placeID string, proposedBranch model.JSONMap) (*model.BranchAddRequest, error) {
	if err := validateBranchProposal(proposedBranch, true); err != nil {
		return nil, err
	}

	if _, err := s.placeRepo.FindByID(placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalPlaceGone
		}
		return nil, err
	}

	request := &model.BranchAddRequest{
		PlaceID:        placeID,
		AuthorID:       &authorID,
		ProposedBranch: proposedBranch,
		Status:         model.RequestStatusPending,
	}
	if err := s.requestRepo.CreateBranchAdd(request); err != nil {
		return nil, err
	}

	logger.Info("Branch-add request submitted", map[string]interface{}{
		"request_id": request.ID,
		"author_id":  authorID,
		"place_id":   placeID,
	})
	return request, nil
}

func validatePlaceProposal(proposal model.JSONMap) error {
	name := strings.TrimSpace(proposal.String("name", ""))
	if len(name) < 2 {
		return ErrInvalidProposal
	}
	return nil
}

func validateBranchProposal(proposal model.JSONMap, nameRequired bool) error {
	if nameRequired {
		name := strings.TrimSpace(proposal.String("name", ""))
		if len(name) < 2 {
			return ErrInvalidProposal
		}
	}

	// Coordinates travel as a pair
	lat, lng := proposal.Float("latitude"), proposal.Float("longitude")
	if (lat == nil) != (lng == nil) {
		return ErrInvalidProposal
	}
	if lat != nil && (*lat < -90 || *lat > 90 || *lng < -180 || *lng > 180) {
		return ErrInvalidProposal
	}
	return nil
}
