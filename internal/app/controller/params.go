package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parsePage reads the common pageIndex/pageSize query parameters.
// pageIndex is 0-based; bad values fall back to the defaults.
func parsePage(c *gin.Context) (int, int) {
	pageIndex, err := strconv.Atoi(c.DefaultQuery("pageIndex", "0"))
	if err != nil || pageIndex < 0 {
		pageIndex = 0
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageIndex, pageSize
}

// uuidParam validates a path parameter as a UUID before it gets anywhere
// near the database.
func uuidParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}
