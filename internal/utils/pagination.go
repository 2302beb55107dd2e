package utils

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
)

var ErrInvalidPaginationParams = errors.New("page must be >= 0 and size must be > 0")

// PaginationParams holds a zero-based page index and a page size
type PaginationParams struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip
func (p PaginationParams) Offset() int {
	return p.Page * p.Size
}

// Valid reports whether the params can address a page. The offset must fit
// in an int, otherwise it would wrap negative and be dropped by the query.
func (p PaginationParams) Valid() bool {
	return p.Page >= 0 && p.Size > 0 && p.Page <= math.MaxInt/p.Size
}

// Page is a bounded, ordered slice of a result set plus pagination metadata
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage assembles a page from one slice of rows and the total match count
func NewPage[T any](content []T, params PaginationParams, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if params.Size > 0 {
		totalPages = int(total / int64(params.Size))
		if total%int64(params.Size) > 0 {
			totalPages++
		}
	}

	return Page[T]{
		Content:       content,
		Page:          params.Page,
		Size:          params.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         params.Page == 0,
		Last:          params.Page >= totalPages-1,
	}
}

// MapPage converts the content of a page, keeping its metadata
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}

	return Page[U]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// Sizes above the maximum are clamped; malformed or negative values are rejected.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil {
		return PaginationParams{}, ErrInvalidPaginationParams
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		return PaginationParams{}, ErrInvalidPaginationParams
	}

	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}

	params := PaginationParams{Page: page, Size: size}
	if !params.Valid() {
		return PaginationParams{}, ErrInvalidPaginationParams
	}

	return params, nil
}

// IsPaginated reads the "paginated" query flag, false when absent
func IsPaginated(c *gin.Context) (bool, error) {
	raw := c.Query("paginated")
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// OptionalBoolQuery reads a boolean query parameter; nil when absent
func OptionalBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
