package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var response Response
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err, "Failed to decode response")
	return response
}

func TestSuccess(t *testing.T) {
	a := New()
	w := httptest.NewRecorder()

	a.Success(context.Background(), w, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	response := decode(t, w)
	assert.Equal(t, StatusSuccess, response.Status)
	assert.NotNil(t, response.Data)
}

func TestSuccess_CarriesRequestID(t *testing.T) {
	a := New()
	w := httptest.NewRecorder()
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")

	a.Success(ctx, w, nil)

	response := decode(t, w)
	assert.Equal(t, "req-123", response.RequestID, "Request id from context should be echoed")
}

func TestCreated(t *testing.T) {
	a := New()
	w := httptest.NewRecorder()

	a.Created(context.Background(), w, map[string]string{"id": "01ABC"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, StatusSuccess, decode(t, w).Status)
}

func TestSuccessWithMeta(t *testing.T) {
	a := New()
	w := httptest.NewRecorder()
	meta := &Meta{Pagination: &Pagination{Page: 2, Limit: 10, Total: 35, TotalPages: 4, HasNextPage: true, HasPrevPage: true}}

	a.SuccessWithMeta(context.Background(), w, []string{"x"}, meta)

	response := decode(t, w)
	require.NotNil(t, response.Meta)
	require.NotNil(t, response.Meta.Pagination)
	assert.Equal(t, 35, response.Meta.Pagination.Total)
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name   string
		call   func(a Api, w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(a Api, w http.ResponseWriter) { a.BadRequest(context.Background(), w, "m") }, http.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", func(a Api, w http.ResponseWriter) { a.Unauthorized(context.Background(), w, "m") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(a Api, w http.ResponseWriter) { a.Forbidden(context.Background(), w, "m") }, http.StatusForbidden, "FORBIDDEN"},
		{"not found", func(a Api, w http.ResponseWriter) { a.NotFound(context.Background(), w, "m") }, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", func(a Api, w http.ResponseWriter) { a.Conflict(context.Background(), w, "m") }, http.StatusConflict, "CONFLICT"},
		{"bad gateway", func(a Api, w http.ResponseWriter) { a.BadGateway(context.Background(), w, "m") }, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"internal", func(a Api, w http.ResponseWriter) { a.InternalServerError(context.Background(), w, "m") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := New()
			w := httptest.NewRecorder()
			tc.call(a, w)

			assert.Equal(t, tc.status, w.Code)
			response := decode(t, w)
			require.NotNil(t, response.Error)
			assert.Equal(t, tc.code, response.Error.Code)
			assert.Equal(t, StatusError, response.Status)
		})
	}
}

func TestValidationError(t *testing.T) {
	a := New()
	w := httptest.NewRecorder()

	a.ValidationError(context.Background(), w, []ErrorDetail{{Field: "email", Message: "Email must be a valid email address"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := decode(t, w)
	require.NotNil(t, response.Error)
	assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	require.Len(t, response.Error.Details, 1)
	assert.Equal(t, "email", response.Error.Details[0].Field)
}
