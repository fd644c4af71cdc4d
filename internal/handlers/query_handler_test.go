package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrteam/hr-orchestrator/internal/models"
)

func newQueryApp() *fiber.App {
	app := fiber.New()
	app.Post("/query", NewQueryHandler().HandleQuery)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleQuery_RoutesToMode(t *testing.T) {
	app := newQueryApp()

	cases := []struct {
		query    string
		wantMode string
	}{
		{"Screen these resumes for the backend role", "resume"},
		{"What is the leave policy?", "policy"},
		{"Start onboarding for the new hires", "onboarding"},
		{"Tell me a joke", "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			resp := postJSON(t, app, "/query", `{"query": "`+tc.query+`"}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body models.QueryResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantMode, body.Mode)
		})
	}
}

func TestHandleQuery_RejectsUnsafeInput(t *testing.T) {
	app := newQueryApp()

	resp := postJSON(t, app, "/query", `{"query": "drop every record"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleQuery_RequiresQuery(t *testing.T) {
	app := newQueryApp()

	resp := postJSON(t, app, "/query", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
