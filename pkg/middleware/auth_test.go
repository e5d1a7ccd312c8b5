package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"account-service/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuth(t *testing.T) {
	jwtConfig := utils.JWTConfig{Secret: "test-secret"}

	var gotUserID int64
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(jwtConfig, zap.NewNop())(next)

	// valid token passes and the user id lands in context
	token, err := utils.GenerateAccessToken("test-secret", 42, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	require.Equal(t, int64(42), gotUserID)

	// missing header
	called = false
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)

	// malformed header
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// expired token
	expired, err := utils.GenerateAccessToken("test-secret", 42, -time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// reset token is not a login credential
	reset, err := utils.GenerateResetToken("test-secret", "a@x.com", time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+reset)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
