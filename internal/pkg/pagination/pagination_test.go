package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()
	app := fiber.New()

	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	return got
}

func TestGetParams_Defaults(t *testing.T) {
	params := paramsFor(t, "/")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestGetParams_OffsetMath(t *testing.T) {
	params := paramsFor(t, "/?page=3&limit=10")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 20, params.Offset)
}

func TestGetParams_ClampsBadValues(t *testing.T) {
	params := paramsFor(t, "/?page=-2&limit=9999")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 20}, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestGetMeta_FirstAndLastPage(t *testing.T) {
	first := GetMeta(&Params{Page: 1, Limit: 20}, 40)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := GetMeta(&Params{Page: 2, Limit: 20}, 40)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
}

func TestGetMeta_EmptyResult(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 20}, 0)

	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	resp := NewResponse(data, &Params{Page: 1, Limit: 2}, 10)

	assert.Equal(t, data, resp.Data)
	assert.Equal(t, 5, resp.Meta.TotalPages)
}
