package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (ctrl *CategoryController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pageIndex, pageSize := parsePage(c)
	result, err := ctrl.categoryService.List(repository.NamedEntityFilter{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Search:    c.Query("search"),
	})
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": result.Rows,
		"total":      result.Total,
	})
}

func (ctrl *CategoryController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category id")
		return
	}

	category, err := ctrl.categoryService.GetByID(id)
	if err != nil {
		if err == service.ErrCategoryNotFound {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (ctrl *CategoryController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	category, err := ctrl.categoryService.Create(input)
	if err != nil {
		switch err {
		case service.ErrNameTooShort:
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
		case service.ErrNameTaken:
			apperrors.Conflict(c, apperrors.CategoryDuplicate, "Category name is taken, try another name")
		default:
			log.Error("Failed to create category", err, nil)
			apperrors.InternalError(c, "Failed to create category")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (ctrl *CategoryController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uintParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category id")
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	category, err := ctrl.categoryService.Update(id, input)
	if err != nil {
		switch err {
		case service.ErrCategoryNotFound:
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case service.ErrNameTooShort:
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
		case service.ErrNameTaken:
			apperrors.Conflict(c, apperrors.CategoryDuplicate, "Category name is taken, try another name")
		default:
			log.Error("Failed to update category", err, nil)
			apperrors.InternalError(c, "Failed to update category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (ctrl *CategoryController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := uintParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category id")
		return
	}

	if err := ctrl.categoryService.Delete(id); err != nil {
		switch err {
		case service.ErrCategoryNotFound:
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case service.ErrCategoryInUse:
			apperrors.Conflict(c, apperrors.CategoryInUse, "Cannot delete: category is in use by places")
		default:
			log.Error("Failed to delete category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "Failed to delete category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
