package apihelpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DEFAULT_PAGE_SIZE = 20
	MAX_PAGE_SIZE     = 100
)

type PaginatedQuery struct {
	Page  int64
	Limit int64
}

func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(DEFAULT_PAGE_SIZE)), 10, 64)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DEFAULT_PAGE_SIZE
	}
	if limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}

	return &PaginatedQuery{
		Page:  page,
		Limit: limit,
	}, nil
}

// Paginate cuts one page out of an already loaded list.
func Paginate[T any](items []T, query *PaginatedQuery) []T {
	start := (query.Page - 1) * query.Limit
	if start >= int64(len(items)) {
		return []T{}
	}
	end := start + query.Limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}
