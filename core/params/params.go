package params

import (
	"math"
	"strconv"
	"strings"

	"event-api/core/constants"

	"github.com/labstack/echo/v4"
)

// maxPageNumber keeps Offset within int for any allowed page size.
const maxPageNumber = math.MaxInt / constants.MaxPageSize

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
	// Filters holds the exact-match filters a list endpoint allows, keyed by query name.
	Filters map[string]string
}

// NewQueryParams reads page, page_size, search and the listed filter keys from the query string.
func NewQueryParams(c echo.Context, filterKeys ...string) *QueryParams {
	p := &QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Filters:    map[string]string{},
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = min(v, maxPageNumber)
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		p.PageSize = v
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	for _, key := range filterKeys {
		if v := strings.TrimSpace(c.QueryParam(key)); v != "" {
			p.Filters[key] = v
		}
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func (p QueryParams) Filter(key string) (string, bool) {
	v, ok := p.Filters[key]
	return v, ok
}
