package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("title", "required"), http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict},
		{"upstream", domain.ErrUpstream, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", errors.Join(errors.New("ctx"), domain.ErrNotFound), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(context.Background(), slog.Default(), rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandleError_ValidationCarriesFields(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := domain.NewValidationErrors([]domain.FieldError{
		{Field: "title", Message: "required"},
		{Field: "duration", Message: "must be >= 0"},
	})
	handleError(context.Background(), slog.Default(), rec, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp validationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "title", resp.Fields[0].Field)
	assert.Equal(t, "duration", resp.Fields[1].Field)
}

func TestPagination_Defaults(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	page, pageSize := pagination(req)
	assert.Zero(t, page)
	assert.Zero(t, pageSize)

	req = httptest.NewRequest(http.MethodGet, "/api/videos?page=2&pageSize=25", nil)
	page, pageSize = pagination(req)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, pageSize)
}
