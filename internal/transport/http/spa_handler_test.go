package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func testFrontend() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte("<html><body>app shell</body></html>")},
		"assets/app.js": {Data: []byte("console.log('hi')")},
	}
}

func TestSPAServesExistingFiles(t *testing.T) {
	h := NewSPAHandler(testFrontend(), slog.Default())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")
}

func TestSPAFallsBackToIndex(t *testing.T) {
	h := NewSPAHandler(testFrontend(), slog.Default())

	for _, path := range []string{"/", "/results/abc-123", "/deeply/nested/route"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "app shell", path)
	}
}

func TestSPAWithoutFrontend(t *testing.T) {
	h := NewSPAHandler(nil, slog.Default())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler("1.2.3", slog.Default())

	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.JSONEq(t, `{"version":"1.2.3"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessReflectsChecks(t *testing.T) {
	h := NewHealthHandler("dev", slog.Default())
	h.AddReadinessCheck("hub", func() bool { return false })

	rec := httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
}
