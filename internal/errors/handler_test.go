package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHandleErrorRendersProblemJSON(t *testing.T) {
	h := NewErrorHandler(slog.Default())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	h.HandleError(rec, req, ErrNoGenderColumn)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	problem := decodeProblem(t, rec)
	assert.Equal(t, "/errors/dataset/no-gender-column", problem["type"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), problem["status"])
	assert.Equal(t, "/api/analyze", problem["instance"])
}

func TestHandleErrorWrappedAPIError(t *testing.T) {
	h := NewErrorHandler(slog.Default())

	wrapped := fmt.Errorf("while analyzing: %w", ErrEmptyDataset)
	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil), wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "/errors/dataset/empty", decodeProblem(t, rec)["type"])
}

func TestHandleErrorUnknownErrorIs500(t *testing.T) {
	h := NewErrorHandler(slog.Default())

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/api/labels", nil), errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "/errors/internal", problem["type"])
	// Internal details never leak to the client.
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestHandleErrorContextDeadline(t *testing.T) {
	h := NewErrorHandler(slog.Default())

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil), context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "/errors/timeout", decodeProblem(t, rec)["type"])
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	h := NewErrorHandler(slog.Default())

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil), ErrValidation("file", "file field is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "/errors/validation", problem["type"])

	details, ok := problem["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "file", details["field"])
}

func TestAPIErrorRoundTrip(t *testing.T) {
	err := New(http.StatusTeapot, "TEAPOT", "short and stout")
	assert.Equal(t, "short and stout", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", err), &apiErr))
	assert.Equal(t, http.StatusTeapot, apiErr.StatusCode)
}
