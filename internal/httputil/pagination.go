package httputil

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination bounds.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ParsePagination reads offset (default 0) and limit (default 50, at most 100).
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errors.New("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, errors.New("invalid limit parameter: must be between 1 and 100")
	}

	return offset, limit, nil
}
