package middleware

import (
	"errors"
	"net/http"
	"strings"

	"symptomcheck/pkg/auth"
	pkgerrors "symptomcheck/pkg/errors"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Headers the Lambda entrypoint sets from the API Gateway JWT authorizer
const (
	HeaderGatewayAuthorized = "X-API-Gateway-Authorized"
	HeaderUserID            = "X-User-ID"
	HeaderUserEmail         = "X-User-Email"
	HeaderUserRole          = "X-User-Role"
)

// Authenticate validates the bearer token with verifier and stores the user
// in the request context
func Authenticate(verifier auth.TokenVerifier, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError("missing authentication token"))
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("requestID", middleware.GetReqID(r.Context())),
				)
				errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError(tokenErrorMessage(err)))
				return
			}

			logger.Debug("Request authenticated",
				zap.String("userID", user.UserID),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
			)

			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), user)))
		})
	}
}

// AuthenticateForLambda trusts the user headers the Lambda entrypoint copies
// from the API Gateway authorizer context. The entrypoint strips any
// client-supplied copies before setting them.
func AuthenticateForLambda(errHandler *pkgerrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(HeaderGatewayAuthorized) != "true" {
				errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError("request not authorized by API Gateway"))
				return
			}

			userID := r.Header.Get(HeaderUserID)
			if userID == "" {
				errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError("missing user context from API Gateway"))
				return
			}

			role := r.Header.Get(HeaderUserRole)
			if role == "" {
				role = "authenticated"
			}

			user := &auth.UserContext{
				UserID: userID,
				Email:  r.Header.Get(HeaderUserEmail),
				Role:   role,
			}
			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), user)))
		})
	}
}

// RateLimit limits requests per signed-in user. Limiter failures let the
// request through.
func RateLimit(limiter auth.RateLimiter, limit int, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	users := auth.NewUserRateLimiter(limiter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := users.Allow(r.Context(), user.UserID)
			if err != nil {
				logger.Warn("Rate limiter error, allowing request",
					zap.String("userID", user.UserID),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				errHandler.Handle(w, r, pkgerrors.NewRateLimitError(limit, "minute"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken reads the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "invalid token signature"
	case errors.Is(err, auth.ErrMissingToken):
		return "missing authentication token"
	default:
		return "invalid token"
	}
}
