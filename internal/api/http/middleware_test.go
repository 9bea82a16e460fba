package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hackmate-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	claims *security.UserClaims
	err    error
}

func (s *stubVerifier) ValidateToken(string) (*security.UserClaims, error) {
	return s.claims, s.err
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	mw := AuthMiddleware(&stubVerifier{})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mw := AuthMiddleware(&stubVerifier{err: security.ErrInvalidToken})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_SetsUserID(t *testing.T) {
	mw := AuthMiddleware(&stubVerifier{claims: &security.UserClaims{UserID: 42}})
	var got int32
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = userID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(42), got)
}
