package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
	"github.com/rajasharmaa/dttt/internal/platform/metrics"
	"github.com/rajasharmaa/dttt/internal/session"
)

func writeErrorJSON(w http.ResponseWriter, status int, errLabel, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errLabel,
		"message": message,
	})
}

// SessionResolver reads the session cookie and, when it resolves to a live
// session, attaches the identity and raw token to the request context. The
// request always continues; the guards below enforce authentication.
func SessionResolver(store session.Store, log *logger.Logger) func(http.Handler) http.Handler {
	resolverLog := log.Named("SessionResolver")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := store.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					resolverLog.Error("Session store failure during resolve", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionCtxKey, identity)
			ctx = context.WithValue(ctx, TokenCtxKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser short-circuits with 401 unless a live session is attached.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			writeErrorJSON(w, http.StatusUnauthorized, "Unauthorized", "Please login to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin short-circuits with 403 unless a live session with the admin
// role is attached.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := SessionFromContext(r.Context())
		if !ok || identity.Role != domain.RoleAdmin {
			writeErrorJSON(w, http.StatusForbidden, "Forbidden", "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	requestLog := log.Named("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			requestLog.Info("Request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Instrument records per-request Prometheus metrics keyed by the chi route
// pattern, so path parameters don't explode label cardinality.
func Instrument(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			m.RequestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
