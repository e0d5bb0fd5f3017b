package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/internal/middleware"
)

type RequestController struct {
	requestService service.RequestService
}

func NewRequestController(requestService service.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

type reviewRequest struct {
	ID     string `json:"id" binding:"required"`
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type placeAddSubmission struct {
	ProposedPlace  model.JSONMap `json:"proposed_place" binding:"required"`
	ProposedBranch model.JSONMap `json:"proposed_branch"`
}

type branchAddSubmission struct {
	PlaceID        string        `json:"place_id" binding:"required"`
	ProposedBranch model.JSONMap `json:"proposed_branch" binding:"required"`
}

func requestFilterFromQuery(c *gin.Context) (repository.RequestFilter, bool) {
	pageIndex, pageSize := parsePage(c)
	filter := repository.RequestFilter{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Status:    c.DefaultQuery("status", string(model.RequestStatusPending)),
		Search:    c.Query("search"),
	}

	if filter.Status != repository.StatusAll && !model.RequestStatus(filter.Status).Valid() {
		return filter, false
	}
	return filter, true
}

func (ctrl *RequestController) ListPlaceAdd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, ok := requestFilterFromQuery(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid status filter")
		return
	}

	result, err := ctrl.requestService.ListPlaceAdd(filter)
	if err != nil {
		log.Error("Failed to list place-add requests", err, nil)
		apperrors.InternalError(c, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": result.Rows,
		"total":    result.Total,
	})
}

func (ctrl *RequestController) ListBranchAdd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, ok := requestFilterFromQuery(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid status filter")
		return
	}

	result, err := ctrl.requestService.ListBranchAdd(filter)
	if err != nil {
		log.Error("Failed to list branch-add requests", err, nil)
		apperrors.InternalError(c, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": result.Rows,
		"total":    result.Total,
	})
}

// reviewParams validates the id and action in the body before any store
// access, so malformed reviews never touch the queue.
func reviewParams(c *gin.Context) (string, service.ReviewAction, string, bool) {
	var body reviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return "", "", "", false
	}

	if _, err := uuid.Parse(body.ID); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid request id")
		return "", "", "", false
	}

	action := service.ReviewAction(body.Action)
	if action != service.ActionApprove && action != service.ActionReject {
		apperrors.BadRequest(c, apperrors.RequestInvalidAction, "Action must be approve or reject")
		return "", "", "", false
	}

	return body.ID, action, body.Reason, true
}

func (ctrl *RequestController) ReviewPlaceAdd(c *gin.Context) {
	id, action, reason, ok := reviewParams(c)
	if !ok {
		return
	}
	ctrl.review(c, id, func(reviewerID string) (*service.ReviewOutcome, error) {
		return ctrl.requestService.ReviewPlaceAdd(id, action, reason, reviewerID)
	})
}

func (ctrl *RequestController) ReviewBranchAdd(c *gin.Context) {
	id, action, reason, ok := reviewParams(c)
	if !ok {
		return
	}
	ctrl.review(c, id, func(reviewerID string) (*service.ReviewOutcome, error) {
		return ctrl.requestService.ReviewBranchAdd(id, action, reason, reviewerID)
	})
}

func (ctrl *RequestController) review(c *gin.Context, id string, apply func(reviewerID string) (*service.ReviewOutcome, error)) {
	log := middleware.GetLoggerFromContext(c)

	reviewerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	outcome, err := apply(reviewerID)
	if err != nil {
		switch err {
		case service.ErrRequestNotFound:
			apperrors.NotFound(c, apperrors.RequestNotFound, "Request not found")
		case service.ErrAlreadyReviewed:
			apperrors.Conflict(c, apperrors.RequestAlreadyReviewed, "Request has already been reviewed")
		case service.ErrInvalidAction:
			apperrors.BadRequest(c, apperrors.RequestInvalidAction, "Action must be approve or reject")
		default:
			log.Error("Review failed", err, map[string]interface{}{
				"request_id": id,
			})
			info := apperrors.ParseError(err, "request")
			apperrors.BadRequest(c, info.Code, info.Message)
		}
		return
	}

	response := gin.H{"message": "Request reviewed"}
	if outcome.PlaceID != "" {
		response["place_id"] = outcome.PlaceID
	}
	if outcome.BranchID != "" {
		response["branch_id"] = outcome.BranchID
	}
	c.JSON(http.StatusOK, response)
}

func (ctrl *RequestController) SubmitPlaceAdd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authorID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var body placeAddSubmission
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	request, err := ctrl.requestService.SubmitPlaceAdd(authorID, body.ProposedPlace, body.ProposedBranch)
	if err != nil {
		if err == service.ErrInvalidProposal {
			apperrors.BadRequest(c, apperrors.RequestInvalidProposal, "Proposal must include a name of at least 2 characters")
			return
		}
		log.Error("Failed to submit place-add request", err, nil)
		apperrors.InternalError(c, "Failed to submit request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

func (ctrl *RequestController) SubmitBranchAdd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authorID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var body branchAddSubmission
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}
	if _, err := uuid.Parse(body.PlaceID); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
		return
	}

	request, err := ctrl.requestService.SubmitBranchAdd(authorID, body.PlaceID, body.ProposedBranch)
	if err != nil {
		switch err {
		case service.ErrInvalidProposal:
			apperrors.BadRequest(c, apperrors.RequestInvalidProposal, "Proposal must include a name of at least 2 characters")
		case service.ErrProposalPlaceGone:
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
		default:
			log.Error("Failed to submit branch-add request", err, nil)
			apperrors.InternalError(c, "Failed to submit request")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}
