package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func parseOver(t *testing.T, target string) Pagination {
	t.Helper()

	var got Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParsePaginationDefaults(t *testing.T) {
	got := parseOver(t, "/")
	require.Equal(t, Pagination{Page: 1, Limit: 20, Offset: 0}, got)
}

func TestParsePaginationWindow(t *testing.T) {
	got := parseOver(t, "/?page=3&limit=10")
	require.Equal(t, Pagination{Page: 3, Limit: 10, Offset: 20}, got)
}

func TestParsePaginationRejectsGarbage(t *testing.T) {
	got := parseOver(t, "/?page=-2&limit=abc")
	require.Equal(t, Pagination{Page: 1, Limit: 20, Offset: 0}, got)
}
