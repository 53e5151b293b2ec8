package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Pagination is the page window parsed from a list request.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads the page and limit query params. Missing,
// malformed or non-positive values fall back to the first page of
// twenty items.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := queryInt(c, "page", defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit := queryInt(c, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	parsed, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return parsed
}
