package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/barrels"
)

// paginatedResponse is the list envelope: a total count plus absolute links
// to the neighbouring pages, or null when there is no such page.
type paginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// listParams reads page, page_size, search and ordering from the query
// string. Unparsable numbers fall back to the defaults.
func listParams(c echo.Context) barrels.ListParams {
	params := barrels.ListParams{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		params.PageSize = v
	}
	params.Normalize()
	return params
}

// paginate wraps the results with links derived from the current request URL.
func paginate[T any](c echo.Context, params barrels.ListParams, total int, results []T) paginatedResponse[T] {
	resp := paginatedResponse[T]{Count: total, Results: results}
	if resp.Results == nil {
		resp.Results = []T{}
	}
	if params.Page*params.PageSize < total {
		resp.Next = pageURL(c, params.Page+1)
	}
	if params.Page > 1 {
		resp.Previous = pageURL(c, params.Page-1)
	}
	return resp
}

func pageURL(c echo.Context, page int) *string {
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := c.Scheme()
	host := c.Request().Host
	s := fmt.Sprintf("%s://%s%s", scheme, host, u.RequestURI())
	return &s
}
