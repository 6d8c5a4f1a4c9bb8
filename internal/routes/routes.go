package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grvbrk/provideo_server/internal/app"
)

const writeRateLimit = 60

func SetupRoutes(app *app.Application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.MiddlewareHandler.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(app.Config.Server.RateLimit, time.Minute))
	r.Use(app.MiddlewareHandler.Security)
	r.Use(app.MiddlewareHandler.Metrics)
	r.Use(corsHandler(app.Config.Server.AllowedOrigins))

	r.Get("/healthz", app.HealthHandler.HandlerHealth)
	r.Handle("/metrics", promhttp.Handler())

	if app.AdminOauth != nil {
		r.Route("/auth/admin", func(r chi.Router) {
			r.Use(httprate.LimitByIP(writeRateLimit, time.Minute))

			r.Get("/", app.AdminOauth.AuthAdmin)
			r.Get("/google/login", app.AdminOauth.Login)
			r.Get("/google/logout", app.AdminOauth.Logout)
			r.Get("/google/callback", app.AdminOauth.Callback)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/videos", app.VideoHandler.HandlerGetVideos)
		r.Get("/videos/check", app.VideoHandler.HandlerCheckVideoSlug)
		r.Get("/video/{slug}", app.VideoHandler.HandlerGetVideoBySlug)

		r.Get("/models", app.ModelHandler.HandlerGetModels)
		r.Get("/models/check", app.ModelHandler.HandlerCheckModelSlug)
		r.Get("/models/{slug}", app.ModelHandler.HandlerGetModelBySlug)

		r.Get("/tags", app.TagHandler.HandlerGetTags)
		r.Get("/tags/{slug}", app.TagHandler.HandlerGetTagBySlug)

		r.Get("/search", app.SearchHandler.HandlerSearch)

		// admin routes
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(writeRateLimit, time.Minute))
			r.Use(app.MiddlewareHandler.RequireAdmin)

			r.Post("/models", app.ModelHandler.HandlerCreateModel)
			r.Patch("/models", app.ModelHandler.HandlerUpdateModel)
			r.Post("/upload", app.UploadHandler.HandlerUploadVideo)
			r.Patch("/video/{slug}", app.VideoHandler.HandlerUpdateVideo)
		})
	})

	return r
}

func corsHandler(origins []string) func(next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Cache-Control"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
		opts.AllowCredentials = false
	}
	return cors.Handler(opts)
}
