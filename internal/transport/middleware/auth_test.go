package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

type mockTokenValidator struct {
	ValidateAccessTokenFunc func(token string) (uuid.UUID, error)
}

func (m *mockTokenValidator) ValidateAccessToken(token string) (uuid.UUID, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return uuid.Nil, errors.New("invalid token")
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &mockTokenValidator{
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, error) {
			assert.Equal(t, "good-token", token)
			return userID, nil
		},
	}

	var gotID uuid.UUID
	var gotOK bool
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = ctxutil.UserIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestAuth_NoToken_PassesAnonymous(t *testing.T) {
	validator := &mockTokenValidator{}

	called := false
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := ctxutil.UserIDFromCtx(r.Context())
		assert.False(t, ok, "anonymous request must have no user identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_InvalidToken_Rejected(t *testing.T) {
	validator := &mockTokenValidator{}

	called := false
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader_TreatedAsAnonymous(t *testing.T) {
	validator := &mockTokenValidator{
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, error) {
			t.Fatal("validator must not be called for a non-Bearer header")
			return uuid.Nil, nil
		},
	}

	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
