package utils_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/utils"
)

func TestEnvelope(t *testing.T) {
	ok := utils.Envelope(true, "Movie created successfully.", map[string]int{"id": 1})
	assert.Equal(t, "success", ok.Status)
	assert.Equal(t, "Movie created successfully.", ok.Message)

	failed := utils.Envelope(false, "Movie not found.", nil)
	raw, err := json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"Movie not found.","data":null}`, string(raw))
}

func TestResponseHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return utils.SuccessResponse(c, fiber.StatusCreated, "done", fiber.Map{"id": 3})
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "missing")
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return utils.ErrorWithDataResponse(c, fiber.StatusUnprocessableEntity, "invalid", fiber.Map{"title": []string{"required"}})
	})

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/ok", fiber.StatusCreated, `{"status":"success","message":"done","data":{"id":3}}`},
		{"/fail", fiber.StatusNotFound, `{"status":"error","message":"missing","data":null}`},
		{"/invalid", fiber.StatusUnprocessableEntity, `{"status":"error","message":"invalid","data":{"title":["required"]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.JSONEq(t, tc.body, string(body))
		})
	}
}
