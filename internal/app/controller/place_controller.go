package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/internal/middleware"
	"github.com/addispot/addispot-backend/pkg/logger"
)

type PlaceController struct {
	placeService service.PlaceService
}

func NewPlaceController(placeService service.PlaceService) *PlaceController {
	return &PlaceController{placeService: placeService}
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (ctrl *PlaceController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pageIndex, pageSize := parsePage(c)
	filter := repository.PlaceFilter{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		Active:    repository.ActiveFilter(c.DefaultQuery("active", "all")),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category id")
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	result, err := ctrl.placeService.List(filter)
	if err != nil {
		log.Error("Failed to list places", err, nil)
		apperrors.InternalError(c, "Failed to fetch places")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"places": result.Rows,
		"total":  result.Total,
	})
}

func (ctrl *PlaceController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
		return
	}

	place, err := ctrl.placeService.GetByID(id)
	if err != nil {
		if err == service.ErrPlaceNotFound {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch place")
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": place})
}

func (ctrl *PlaceController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.PlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	place, err := ctrl.placeService.Create(input)
	if err != nil {
		ctrl.respondMutationError(c, log, err, "create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"place": place})
}

func (ctrl *PlaceController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
		return
	}

	var input service.PlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	place, err := ctrl.placeService.Update(id, input)
	if err != nil {
		ctrl.respondMutationError(c, log, err, "update")
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": place})
}

// SetActive toggles visibility without touching the rest of the row.
func (ctrl *PlaceController) SetActive(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
		return
	}

	var body setActiveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.placeService.SetActive(id, *body.IsActive); err != nil {
		if err == service.ErrPlaceNotFound {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		apperrors.InternalError(c, "Failed to update place")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place updated"})
}

func (ctrl *PlaceController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid place id")
		return
	}

	if err := ctrl.placeService.Delete(id); err != nil {
		if err == service.ErrPlaceNotFound {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		log.Error("Failed to delete place", err, map[string]interface{}{
			"place_id": id,
		})
		info := apperrors.ParseError(err, "place")
		apperrors.BadRequest(c, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place deleted"})
}

func (ctrl *PlaceController) respondMutationError(c *gin.Context, log *logger.Logger, err error, op string) {
	switch err {
	case service.ErrPlaceNotFound:
		apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
	case service.ErrNameTooShort:
		apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
	default:
		log.Error("Place mutation failed", err, map[string]interface{}{
			"op": op,
		})
		info := apperrors.ParseError(err, "place")
		apperrors.BadRequest(c, info.Code, info.Message)
	}
}
