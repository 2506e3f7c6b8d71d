package response_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"swiftparcel/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler fiber.Handler) (int, *response.Response) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, &envelope
}

func TestSuccessEnvelope(t *testing.T) {
	status, envelope := perform(t, func(c *fiber.Ctx) error {
		return response.Success(c, "ok", fiber.Map{"id": 1})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Message)
	assert.NotNil(t, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestCreatedEnvelope(t *testing.T) {
	status, envelope := perform(t, func(c *fiber.Ctx) error {
		return response.Created(c, "created", nil)
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, envelope.Success)
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name    string
		handler fiber.Handler
		status  int
	}{
		{"bad request", func(c *fiber.Ctx) error { return response.BadRequest(c, "bad") }, fiber.StatusBadRequest},
		{"unauthorized", func(c *fiber.Ctx) error { return response.Unauthorized(c, "nope") }, fiber.StatusUnauthorized},
		{"forbidden", func(c *fiber.Ctx) error { return response.Forbidden(c, "nope") }, fiber.StatusForbidden},
		{"not found", func(c *fiber.Ctx) error { return response.NotFound(c, "gone") }, fiber.StatusNotFound},
		{"conflict", func(c *fiber.Ctx) error { return response.Conflict(c, "dup") }, fiber.StatusConflict},
		{"internal", func(c *fiber.Ctx) error { return response.InternalServerError(c, "boom") }, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := perform(t, tt.handler)
			assert.Equal(t, tt.status, status)
			assert.False(t, envelope.Success)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}
