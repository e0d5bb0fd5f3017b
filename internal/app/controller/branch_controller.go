package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/internal/middleware"
	"github.com/addispot/addispot-backend/pkg/logger"
)

type BranchController struct {
	branchService service.BranchService
}

func NewBranchController(branchService service.BranchService) *BranchController {
	return &BranchController{branchService: branchService}
}

func (ctrl *BranchController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pageIndex, pageSize := parsePage(c)
	filter := repository.BranchFilter{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		Active:    repository.ActiveFilter(c.DefaultQuery("active", "all")),
		Main:      repository.MainFilter(c.DefaultQuery("main", "all")),
	}
	if placeID := c.Query("place_id"); placeID != "" {
		if _, err := uuid.Parse(placeID); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
			return
		}
		filter.PlaceID = placeID
	}

	result, err := ctrl.branchService.List(filter)
	if err != nil {
		log.Error("Failed to list branches", err, nil)
		apperrors.InternalError(c, "Failed to fetch branches")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"branches": result.Rows,
		"total":    result.Total,
	})
}

func (ctrl *BranchController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch id")
		return
	}

	branch, err := ctrl.branchService.GetByID(id)
	if err != nil {
		if err == service.ErrBranchNotFound {
			apperrors.NotFound(c, apperrors.BranchNotFound, "Branch not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch branch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

func (ctrl *BranchController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}
	if _, err := uuid.Parse(input.PlaceID); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
		return
	}

	branch, err := ctrl.branchService.Create(input)
	if err != nil {
		ctrl.respondMutationError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"branch": branch})
}

func (ctrl *BranchController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch id")
		return
	}

	var input service.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	branch, err := ctrl.branchService.Update(id, input)
	if err != nil {
		ctrl.respondMutationError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

func (ctrl *BranchController) SetActive(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch id")
		return
	}

	var body setActiveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.branchService.SetActive(id, *body.IsActive); err != nil {
		if err == service.ErrBranchNotFound {
			apperrors.NotFound(c, apperrors.BranchNotFound, "Branch not found")
			return
		}
		apperrors.InternalError(c, "Failed to update branch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch updated"})
}

func (ctrl *BranchController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch id")
		return
	}

	if err := ctrl.branchService.Delete(id); err != nil {
		if err == service.ErrBranchNotFound {
			apperrors.NotFound(c, apperrors.BranchNotFound, "Branch not found")
			return
		}
		log.Error("Failed to delete branch", err, map[string]interface{}{
			"branch_id": id,
		})
		info := apperrors.ParseError(err, "branch")
		apperrors.BadRequest(c, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
}

func (ctrl *BranchController) respondMutationError(c *gin.Context, log *logger.Logger, err error) {
	switch err {
	case service.ErrBranchNotFound:
		apperrors.NotFound(c, apperrors.BranchNotFound, "Branch not found")
	case service.ErrPlaceNotFound:
		apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
	case service.ErrNameTooShort:
		apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
	default:
		log.Error("Branch mutation failed", err, nil)
		info := apperrors.ParseError(err, "branch")
		apperrors.BadRequest(c, info.Code, info.Message)
	}
}
