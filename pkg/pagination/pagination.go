package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts and validates page/limit from query parameters
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit := ParseLimit(c, DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ParseLimit validates the limit query parameter alone, for endpoints like
// the activity feed that cap results without paging.
func ParseLimit(c *gin.Context, fallback int) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if limit < MinLimit {
		limit = fallback
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}
