package middlewares

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/auth"
	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/metrics"
	"github.com/grvbrk/provideo_server/internal/utils"
)

type contextKey string

const AdminContextKey contextKey = "admin"

// AdminSessions resolves the admin behind a session cookie.
type AdminSessions interface {
	SessionAdmin(r *http.Request) (*auth.Admin, bool)
}

type MiddlewareHandler struct {
	Logger zerolog.Logger
	Auth   config.AuthConfig
	Admins AdminSessions
}

func NewMiddlewareHandler(logger zerolog.Logger, authCfg config.AuthConfig, admins AdminSessions) *MiddlewareHandler {
	return &MiddlewareHandler{
		Logger: logger,
		Auth:   authCfg,
		Admins: admins,
	}
}

// RequireAdmin guards write routes. It is a pass-through when no admin credential is configured.
func (mh *MiddlewareHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mh.Auth.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		if mh.validBearer(r) {
			ctx := context.WithValue(r.Context(), AdminContextKey, &auth.Admin{Name: "api-token"})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if mh.Admins != nil {
			if admin, ok := mh.Admins.SessionAdmin(r); ok {
				ctx := context.WithValue(r.Context(), AdminContextKey, admin)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		mh.Logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("admin access denied")
		utils.WriteError(w, http.StatusUnauthorized, "Admin access required")
	})
}

func (mh *MiddlewareHandler) validBearer(r *http.Request) bool {
	if mh.Auth.AdminAPIToken == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(mh.Auth.AdminAPIToken)) == 1
}

func (mh *MiddlewareHandler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		event := mh.Logger.Info()
		if status >= http.StatusInternalServerError {
			event = mh.Logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("origin", r.Header.Get("Origin")).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// Metrics records request counts and latency labelled by chi route pattern.
func (mh *MiddlewareHandler) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		metrics.ObserveRequest(r.Method, route, status, time.Since(start))
	})
}

func (mh *MiddlewareHandler) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func GetAdminFromContext(r *http.Request) (*auth.Admin, bool) {
	admin, ok := r.Context().Value(AdminContextKey).(*auth.Admin)
	return admin, ok
}
