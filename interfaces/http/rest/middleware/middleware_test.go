package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"symptomcheck/pkg/auth"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func echoUser(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-Seen-User", user.UserID)
		w.Header().Set("X-Seen-Role", user.Role)
		w.WriteHeader(http.StatusOK)
	})
}

type stubVerifier struct {
	user *auth.UserContext
	err  error
}

func (s stubVerifier) Verify(ctx context.Context, token string) (*auth.UserContext, error) {
	return s.user, s.err
}

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, auth.ErrLimiterUnavailable
}

func (failingLimiter) Reset(ctx context.Context, key string) error { return nil }

func TestAuthenticate(t *testing.T) {
	errHandler := pkgerrors.NewErrorHandler(zap.NewNop(), false)

	tests := []struct {
		name     string
		header   string
		verifier stubVerifier
		want     int
	}{
		{"missing header", "", stubVerifier{}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", stubVerifier{}, http.StatusUnauthorized},
		{"expired", "Bearer tok", stubVerifier{err: auth.ErrExpiredToken}, http.StatusUnauthorized},
		{"valid", "Bearer tok", stubVerifier{user: &auth.UserContext{UserID: "user-1"}}, http.StatusOK},
		{"lowercase scheme", "bearer tok", stubVerifier{user: &auth.UserContext{UserID: "user-1"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Authenticate(tt.verifier, errHandler, zap.NewNop())(echoUser(t))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "user-1", rec.Header().Get("X-Seen-User"))
			}
		})
	}
}

func TestTokenErrorMessage(t *testing.T) {
	assert.Equal(t, "token has expired", tokenErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "invalid token signature", tokenErrorMessage(auth.ErrInvalidSignature))
	assert.Equal(t, "invalid token", tokenErrorMessage(errors.New("anything")))
}

func TestAuthenticateForLambda(t *testing.T) {
	errHandler := pkgerrors.NewErrorHandler(zap.NewNop(), false)
	h := AuthenticateForLambda(errHandler)(echoUser(t))

	t.Run("not authorized by gateway", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, "user-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderGatewayAuthorized, "true")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderGatewayAuthorized, "true")
		req.Header.Set(HeaderUserID, "user-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Header().Get("X-Seen-User"))
		assert.Equal(t, "authenticated", rec.Header().Get("X-Seen-Role"))
	})
}

func TestRateLimit(t *testing.T) {
	errHandler := pkgerrors.NewErrorHandler(zap.NewNop(), false)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	request := func(h http.Handler, user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user != "" {
			req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: user}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	newLimiter := func(t *testing.T) *auth.SlidingWindowLimiter {
		limiter := auth.NewSlidingWindowLimiter(1, time.Minute)
		t.Cleanup(limiter.Stop)
		return limiter
	}

	t.Run("limits per user", func(t *testing.T) {
		h := RateLimit(newLimiter(t), 1, errHandler, zap.NewNop())(ok)
		assert.Equal(t, http.StatusOK, request(h, "user-1"))
		assert.Equal(t, http.StatusTooManyRequests, request(h, "user-1"))
		assert.Equal(t, http.StatusOK, request(h, "user-2"))
	})

	t.Run("fails open", func(t *testing.T) {
		h := RateLimit(failingLimiter{}, 1, errHandler, zap.NewNop())(ok)
		assert.Equal(t, http.StatusOK, request(h, "user-1"))
	})

	t.Run("keys are scoped to the user", func(t *testing.T) {
		limiter := &keyRecordingLimiter{}
		h := RateLimit(limiter, 1, errHandler, zap.NewNop())(ok)
		assert.Equal(t, http.StatusOK, request(h, "user-1"))
		assert.Equal(t, []string{"user:user-1"}, limiter.keys)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		h := RateLimit(newLimiter(t), 1, errHandler, zap.NewNop())(ok)
		assert.Equal(t, http.StatusOK, request(h, ""))
		assert.Equal(t, http.StatusOK, request(h, ""))
	})
}

type keyRecordingLimiter struct {
	keys []string
}

func (l *keyRecordingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return true, nil
}

func (l *keyRecordingLimiter) Reset(ctx context.Context, key string) error {
	return nil
}

type routeRecorder struct {
	observability.NopRecorder
	route  string
	status int
}

func (r *routeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	r.route = route
	r.status = status
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := &routeRecorder{}
	router := chi.NewRouter()
	router.Use(Metrics(rec))
	router.Delete("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/items/42", nil))

	assert.Equal(t, "/items/{id}", rec.route)
	assert.Equal(t, http.StatusNoContent, rec.status)
}
