package apihelpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePaginatedQueryFromCtx(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := ParsePaginatedQueryFromCtx(ctxWithQuery(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Page != 1 || q.Limit != DEFAULT_PAGE_SIZE {
			t.Errorf("unexpected query: %+v", q)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		q, err := ParsePaginatedQueryFromCtx(ctxWithQuery("page=3&limit=5"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Page != 3 || q.Limit != 5 {
			t.Errorf("unexpected query: %+v", q)
		}
	})

	t.Run("limit is capped", func(t *testing.T) {
		q, err := ParsePaginatedQueryFromCtx(ctxWithQuery("limit=5000"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Limit != MAX_PAGE_SIZE {
			t.Errorf("unexpected limit: %d", q.Limit)
		}
	})

	t.Run("invalid page", func(t *testing.T) {
		if _, err := ParsePaginatedQueryFromCtx(ctxWithQuery("page=abc")); err == nil {
			t.Error("should return an error")
		}
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first page", func(t *testing.T) {
		page := Paginate(items, &PaginatedQuery{Page: 1, Limit: 2})
		if len(page) != 2 || page[0] != 1 {
			t.Errorf("unexpected page: %v", page)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		page := Paginate(items, &PaginatedQuery{Page: 3, Limit: 2})
		if len(page) != 1 || page[0] != 5 {
			t.Errorf("unexpected page: %v", page)
		}
	})

	t.Run("page beyond the end", func(t *testing.T) {
		page := Paginate(items, &PaginatedQuery{Page: 4, Limit: 2})
		if len(page) != 0 {
			t.Errorf("unexpected page: %v", page)
		}
	})
}
