package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"topocanvas/pkg/auth"

	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateDisabledPassesThrough(t *testing.T) {
	// nil validator and nil limiter: both auth and rate limiting off
	handler := Authenticate(nil, nil, zap.NewNop())(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/graph", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAuthenticateRateLimits(t *testing.T) {
	limiter := auth.NewTokenBucketLimiter(1, time.Hour)
	handler := Authenticate(nil, limiter, zap.NewNop())(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/graph", nil)
	req.RemoteAddr = "10.0.0.1:55000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: "test-secret"})
	assert.NoError(t, err)

	handler := Authenticate(validator, nil, zap.NewNop())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/graph", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
