package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/internal/middleware"
)

type CuisineController struct {
	cuisineService service.CuisineService
}

func NewCuisineController(cuisineService service.CuisineService) *CuisineController {
	return &CuisineController{cuisineService: cuisineService}
}

func (ctrl *CuisineController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pageIndex, pageSize := parsePage(c)
	result, err := ctrl.cuisineService.List(repository.NamedEntityFilter{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Search:    c.Query("search"),
	})
	if err != nil {
		log.Error("Failed to list cuisines", err, nil)
		apperrors.InternalError(c, "Failed to fetch cuisines")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cuisines": result.Rows,
		"total":    result.Total,
	})
}

func (ctrl *CuisineController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cuisine id")
		return
	}

	cuisine, err := ctrl.cuisineService.GetByID(id)
	if err != nil {
		if err == service.ErrCuisineNotFound {
			apperrors.NotFound(c, apperrors.CuisineNotFound, "Cuisine not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch cuisine")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cuisine": cuisine})
}

func (ctrl *CuisineController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CuisineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	cuisine, err := ctrl.cuisineService.Create(input)
	if err != nil {
		switch err {
		case service.ErrNameTooShort:
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
		case service.ErrNameTaken:
			apperrors.Conflict(c, apperrors.CuisineDuplicate, "Cuisine name is taken, try another name")
		default:
			log.Error("Failed to create cuisine", err, nil)
			apperrors.InternalError(c, "Failed to create cuisine")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cuisine": cuisine})
}

func (ctrl *CuisineController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uintParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cuisine id")
		return
	}

	var input service.CuisineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	cuisine, err := ctrl.cuisineService.Update(id, input)
	if err != nil {
		switch err {
		case service.ErrCuisineNotFound:
			apperrors.NotFound(c, apperrors.CuisineNotFound, "Cuisine not found")
		case service.ErrNameTooShort:
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
		case service.ErrNameTaken:
			apperrors.Conflict(c, apperrors.CuisineDuplicate, "Cuisine name is taken, try another name")
		default:
			log.Error("Failed to update cuisine", err, nil)
			apperrors.InternalError(c, "Failed to update cuisine")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"cuisine": cuisine})
}

func (ctrl *CuisineController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uintParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cuisine id")
		return
	}

	if err := ctrl.cuisineService.Delete(id); err != nil {
		switch err {
		case service.ErrCuisineNotFound:
			apperrors.NotFound(c, apperrors.CuisineNotFound, "Cuisine not found")
		case service.ErrCuisineInUse:
			apperrors.Conflict(c, apperrors.CuisineInUse, "Cannot delete: cuisine is in use by places or branches")
		default:
			log.Error("Failed to delete cuisine", err, map[string]interface{}{
				"cuisine_id": id,
			})
			apperrors.InternalError(c, "Failed to delete cuisine")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cuisine deleted"})
}
