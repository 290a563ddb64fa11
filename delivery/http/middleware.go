// Package http contains the HTTP delivery layer for the application.
package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"rental-service/pkg/api"
	"rental-service/pkg/jwt"
	"rental-service/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// Context keys populated by JWTMiddleware.
const (
	ctxKeyUserID   = contextKey("user_id")
	ctxKeyRole     = contextKey("role")
	ctxKeyVendorID = contextKey("vendor_id")
)

type contextKey string

// LoggingMiddleware logs every request with method, path, status and timing.
func LoggingMiddleware(logger logger.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// JWTMiddleware validates bearer tokens and puts the claims on the context.
// Missing or invalid tokens get a 401.
func JWTMiddleware(jwtClient *jwt.Client, logger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "Missing Authorization header")
				apiClient.Unauthorized(ctx, w, "Missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				logger.WarnContext(ctx, "Invalid Authorization header format")
				apiClient.Unauthorized(ctx, w, "Invalid Authorization header format")
				return
			}

			claims, err := jwtClient.ValidateToken(authHeader[len(bearerPrefix):])
			if err != nil {
				logger.WarnContext(ctx, "Invalid access token", "error", err)
				apiClient.Unauthorized(ctx, w, "Invalid access token")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxKeyRole, claims.Role)
			ctx = context.WithValue(ctx, ctxKeyVendorID, claims.VendorID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware rejects requests whose token role is not in allowed.
// It must run after JWTMiddleware.
func RoleMiddleware(logger logger.LoggerInterface, apiClient api.Api, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			role, _ := ctx.Value(ctxKeyRole).(string)
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.WarnContext(ctx, "Access denied: role not permitted", "role", role)
			apiClient.Forbidden(ctx, w, "Access denied: insufficient permissions")
		})
	}
}

// AdminMiddleware restricts a route group to admin tokens.
func AdminMiddleware(logger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return RoleMiddleware(logger, apiClient, jwt.RoleAdmin)
}

// VendorMiddleware restricts a route group to vendor or admin tokens.
func VendorMiddleware(logger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return RoleMiddleware(logger, apiClient, jwt.RoleVendor, jwt.RoleAdmin)
}

// userIDFromContext returns the authenticated user id, if any.
func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}

// vendorIDFromContext returns the vendor the token is scoped to, if any.
func vendorIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyVendorID).(string)
	return id
}

// roleFromContext returns the token role, if any.
func roleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ctxKeyRole).(string)
	return role
}
