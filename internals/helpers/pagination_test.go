package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, query string, opt Options) Params {
	t.Helper()
	var got Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", opt)
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	return got
}

func TestParseFiber(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		opt     Options
		page    int
		perPage int
		sortBy  string
		order   string
		all     bool
	}{
		{"defaults", "", DefaultOpts, 1, 25, "created_at", "desc", false},
		{"explicit", "?page=3&per_page=10&sort_by=paid_amount&order=ASC", DefaultOpts, 3, 10, "paid_amount", "asc", false},
		{"limit alias", "?limit=7", DefaultOpts, 1, 7, "created_at", "desc", false},
		{"capped at max", "?per_page=9999", DefaultOpts, 1, 200, "created_at", "desc", false},
		{"bad page", "?page=-2", DefaultOpts, 1, 25, "created_at", "desc", false},
		{"all not allowed", "?per_page=all", DefaultOpts, 1, 25, "created_at", "desc", false},
		{"all allowed", "?page=4&per_page=all", AdminOpts, 1, 10000, "created_at", "desc", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := parseWith(t, tc.query, tc.opt)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.perPage, p.PerPage)
			assert.Equal(t, tc.sortBy, p.SortBy)
			assert.Equal(t, tc.order, p.SortOrder)
			assert.Equal(t, tc.all, p.All)
		})
	}
}

func TestParams_OrderColumn(t *testing.T) {
	allowed := map[string]string{
		"created_at":  "student_fee_created_at",
		"paid_amount": "student_fee_paid_amount",
	}

	col, desc := Params{SortBy: "paid_amount", SortOrder: "asc"}.OrderColumn(allowed, "created_at")
	assert.Equal(t, "student_fee_paid_amount", col)
	assert.False(t, desc)

	col, desc = Params{SortBy: "student_fee_paid_amount; drop table x", SortOrder: "desc"}.OrderColumn(allowed, "created_at")
	assert.Equal(t, "student_fee_created_at", col)
	assert.True(t, desc)
}

func TestBuildPaginationAndPageSlice(t *testing.T) {
	p := Params{Page: 2, PerPage: 2}
	pg := BuildPagination(5, p)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, PageSlice(items, p))
	assert.Equal(t, []int{5}, PageSlice(items, Params{Page: 3, PerPage: 2}))
	assert.Equal(t, []int{}, PageSlice(items, Params{Page: 9, PerPage: 2}))

	empty := BuildPagination(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestJsonListEx_Shape(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := Params{Page: 1, PerPage: 2}
		return JsonListEx(c, "", []string{"a", "b"}, BuildPagination(3, p), fiber.Map{"totals": 1})
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	var out struct {
		Success    bool       `json:"success"`
		Message    string     `json:"message"`
		Data       []string   `json:"data"`
		Pagination Pagination `json:"pagination"`
		Includes   fiber.Map  `json:"includes"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "ok", out.Message)
	assert.Equal(t, 2, out.Pagination.Count)
	assert.Equal(t, int64(3), out.Pagination.Total)
	assert.NotEmpty(t, out.Pagination.PerPageOptions)
	assert.EqualValues(t, 1, out.Includes["totals"])
}

func TestFromError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "dup") })
	app.Get("/plain", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/fiber", fiber.StatusConflict, "CONFLICT"},
		{"/plain", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode)

		var out ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.False(t, out.Success)
		assert.Equal(t, tc.code, out.ErrorCode)
	}
}
