package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/employee-api/internal/config"
	"github.com/deppfellow/employee-api/internal/errs"
	"github.com/deppfellow/employee-api/internal/logger"
	"github.com/deppfellow/employee-api/internal/server"
)

func testServer(rateLimit float64) *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
		},
		Logger: &log,
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		desc     string
		incoming string
	}{
		{"generates an id", ""},
		{"keeps the caller's id", "req-123"},
	}

	for i, tc := range tests {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.incoming != "" {
			req.Header.Set(RequestIDHeader, tc.incoming)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen string
		err := RequestID()(func(c echo.Context) error {
			seen = GetRequestID(c)
			return nil
		})(c)
		require.NoError(t, err, "TEST[%d], failed.\n%s", i, tc.desc)

		assert.NotEmpty(t, seen, "TEST[%d], failed.\n%s", i, tc.desc)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader), "TEST[%d], failed.\n%s", i, tc.desc)
		if tc.incoming != "" {
			assert.Equal(t, tc.incoming, seen, "TEST[%d], failed.\n%s", i, tc.desc)
		}
	}
}

func TestEnhanceContextStoresLogger(t *testing.T) {
	s := testServer(0)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		fromEcho := GetLogger(c)
		fromCtx := logger.FromContext(c.Request().Context(), nil)

		assert.NotNil(t, fromCtx)
		assert.Same(t, fromEcho, fromCtx)
		return nil
	})(c)

	assert.NoError(t, err)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		desc   string
		err    error
		status int
		code   string
	}{
		{"http error", errs.NewNotFoundError("Employee not found", true, errs.Code(errs.CodeEmployeeNotFound)),
			http.StatusNotFound, errs.CodeEmployeeNotFound},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for i, tc := range tests {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/employees/1", nil), rec)

		NewGlobalMiddlewares(testServer(0)).GlobalErrorHandler(tc.err, c)

		assert.Equal(t, tc.status, rec.Code, "TEST[%d], failed.\n%s", i, tc.desc)
		body := decodeError(t, rec)
		assert.Equal(t, tc.code, body.Code, "TEST[%d], failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.status, body.Status, "TEST[%d], failed.\n%s", i, tc.desc)
	}
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFromError(nil, http.StatusOK))
	assert.Equal(t, http.StatusNotFound, statusFromError(errs.NewNotFoundError("x", false, nil), http.StatusOK))
	assert.Equal(t, http.StatusForbidden, statusFromError(echo.ErrForbidden, http.StatusOK))
	assert.Equal(t, http.StatusOK, statusFromError(errors.New("x"), http.StatusOK))
}

func TestRateLimit(t *testing.T) {
	s := testServer(1)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	statuses := make([]int, 0, 2)
	for range 2 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, statuses)
}

func TestRateLimitDisabled(t *testing.T) {
	s := testServer(0)
	e := echo.New()
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for range 5 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}
