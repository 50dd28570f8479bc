package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes func(e *echo.Echo)

func (r routes) RegisterRoutes(e *echo.Echo) { r(e) }

func testServer(opts ...ServerOption) *echo.Echo {
	h := routes(func(e *echo.Echo) {
		e.GET("/api/ping", func(c echo.Context) error { return SuccessResponse(c, "pong") })
		e.GET("/api/boom", func(c echo.Context) error { panic("boom") })
	})
	opts = append([]ServerOption{WithMetrics(false, 0)}, opts...)
	return NewServer(h, opts...).Echo()
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServerHealthzAssignsRequestID(t *testing.T) {
	rec := serve(testServer(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerPanicReturnsEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/boom", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := serve(testServer(), req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"ERR_INTERNAL"`)
	assert.Contains(t, rec.Body.String(), `"req-42"`)
	assert.NotContains(t, rec.Body.String(), "goroutine")
}

func TestServerCORSPreflight(t *testing.T) {
	e := testServer(WithCORSOrigins([]string{"https://desk.example"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://desk.example")
	rec := serve(e, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://desk.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))

	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://other.example")
	rec = serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServerCORSAllowsAnyOriginByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := serve(testServer(), req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, echo.HeaderXRequestID, rec.Header().Get(echo.HeaderAccessControlExposeHeaders))
}
