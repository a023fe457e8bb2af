package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"zephyr/internal/config"
	"zephyr/internal/models"
	"zephyr/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		AppName:        "zephyr-test",
		Env:            "test",
		AllowedOrigins: "*",
		UploadDir:      t.TempDir(),
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	return s, s.NewApp(), db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) models.ErrorResponse {
	t.Helper()
	var out models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestRootAndHealth(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "Social Networking App API", "version": "1.0.0"}`, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "healthy"}`, string(raw))

	resp, _ = doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadinessCheck_RedisDisabled(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"])
	assert.Equal(t, "disabled", body.Checks["redis"])
}

func TestUnknownRoute_ReturnsJSON404(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decodeError(t, raw).Error)
}

func TestCORSHeaders(t *testing.T) {
	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.test")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestMapServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"conflict", models.NewConflictError("dup"), http.StatusBadRequest},
		{"not found", models.NewNotFoundError("User", 1), http.StatusNotFound},
		{"forbidden", models.NewForbiddenError("no"), http.StatusForbidden},
		{"internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mapServiceError(tt.err))
		})
	}
}

func TestWindowParsing(t *testing.T) {
	_, app, _ := newTestServer(t)

	tests := []struct {
		name    string
		path    string
		status  int
		message string
	}{
		{"non integer skip", "/api/users?skip=abc", http.StatusBadRequest, "skip must be an integer"},
		{"negative skip", "/api/users?skip=-1", http.StatusBadRequest, "skip must not be negative"},
		{"non integer limit", "/api/posts?limit=1.5", http.StatusBadRequest, "limit must be an integer"},
		{"zero list limit", "/api/posts?limit=0", http.StatusBadRequest, "limit must be at least 1"},
		{"zero feed limit is clamped", "/api/feed/public?limit=0", http.StatusOK, ""},
		{"huge feed limit is clamped", "/api/feed/public?limit=1000", http.StatusOK, ""},
		{"bad id", "/api/users/abc", http.StatusBadRequest, "Invalid ID"},
		{"zero id", "/api/posts/0", http.StatusBadRequest, "Invalid ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, resp.StatusCode, string(raw))
			if tt.message != "" {
				e := decodeError(t, raw)
				assert.Equal(t, tt.message, e.Error)
				assert.Equal(t, models.CodeValidation, e.Code)
			}
		})
	}
}
