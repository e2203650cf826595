package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
)

// pageResponse arma {count, next, previous, results}. Los enlaces son absolutos y conservan
// los filtros de la petición.
func pageResponse[T any](c *fiber.Ctx, res *dto.ListResult[T], p dto.PageRequest) dto.PageResponse[T] {
	out := dto.PageResponse[T]{Count: res.Total, Results: res.Items}
	if out.Results == nil {
		out.Results = []T{}
	}
	if p.Page*p.PageSize < res.Total {
		out.Next = pageLink(c, p.Page+1, p.PageSize)
	}
	if p.Page > 1 {
		out.Previous = pageLink(c, p.Page-1, p.PageSize)
	}
	return out
}

func pageLink(c *fiber.Ctx, page, size int) *string {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		values = url.Values{}
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(size))
	link := c.BaseURL() + c.Path() + "?" + values.Encode()
	return &link
}
