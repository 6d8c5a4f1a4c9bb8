package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/metrics"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/services"
	"github.com/grvbrk/provideo_server/internal/store"
	"github.com/grvbrk/provideo_server/internal/utils"
)

const maxUserAgentLen = 512

type VideoHandler struct {
	VideoStore   store.VideoStore
	ViewEvents   store.ViewEventStore
	Cache        store.VideoCache
	Registration *services.RegistrationService
	Catalog      config.CatalogConfig
	Logger       zerolog.Logger
}

func NewVideoHandler(
	videoStore store.VideoStore,
	viewEvents store.ViewEventStore,
	cache store.VideoCache,
	registration *services.RegistrationService,
	catalog config.CatalogConfig,
	logger zerolog.Logger,
) *VideoHandler {
	if cache == nil {
		cache = store.NopVideoCache{}
	}
	return &VideoHandler{
		VideoStore:   videoStore,
		ViewEvents:   viewEvents,
		Cache:        cache,
		Registration: registration,
		Catalog:      catalog,
		Logger:       logger,
	}
}

func (vh *VideoHandler) HandlerGetVideos(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, vh.Catalog.DefaultPageSize, vh.Catalog.MaxPageSize)
	p := models.NewPagination(page, limit, 0)

	videos, total, err := vh.VideoStore.ListPublished(r.Context(), limit, p.Offset())
	if err != nil {
		vh.Logger.Error().Err(err).Int("page", page).Int("limit", limit).Msg("error listing videos")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"videos":     videos,
		"pagination": models.NewPagination(page, limit, total),
	})
}

func (vh *VideoHandler) HandlerGetVideoBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	ctx := r.Context()

	video, hit, err := vh.Cache.GetVideo(ctx, slug)
	if err != nil {
		vh.Logger.Warn().Err(err).Str("slug", slug).Msg("video cache read failed")
	}
	metrics.IncCacheLookup(hit)

	if !hit {
		video, err = vh.VideoStore.GetPublishedBySlug(ctx, slug)
		if err != nil {
			writeError(w, vh.Logger, err, "Video not found", "")
			return
		}
		if err := vh.Cache.SetVideo(ctx, video); err != nil {
			vh.Logger.Warn().Err(err).Str("slug", slug).Msg("video cache write failed")
		}
	}

	vh.recordView(r, video)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	utils.WriteJSON(w, http.StatusOK, video)
}

// recordView appends a view event. Failures are logged and never fail the request.
func (vh *VideoHandler) recordView(r *http.Request, video *models.VideoDetail) {
	ua := r.UserAgent()
	if len(ua) > maxUserAgentLen {
		ua = ua[:maxUserAgentLen]
	}

	event := models.ViewEvent{
		VideoID:   video.ID,
		BotFlag:   models.IsBotUserAgent(ua),
		UserAgent: ua,
	}

	if err := vh.ViewEvents.RecordView(r.Context(), event); err != nil {
		vh.Logger.Warn().Err(err).Str("slug", video.Slug).Msg("failed to record view")
		return
	}
	metrics.IncViewEvent(event.BotFlag)
}

func (vh *VideoHandler) HandlerCheckVideoSlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slug parameter is required")
		return
	}

	video, err := vh.VideoStore.ProbeBySlug(r.Context(), slug)
	if errors.Is(err, models.ErrNotFound) {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"exists": false})
		return
	}
	if err != nil {
		vh.Logger.Error().Err(err).Str("slug", slug).Msg("error checking video slug")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=60, stale-while-revalidate=30")
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"exists": true, "video": video})
}

func (vh *VideoHandler) HandlerUpdateVideo(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var patch models.VideoPatch
	if err := utils.ReadJSON(w, r, &patch); err != nil {
		vh.Logger.Warn().Err(err).Str("slug", slug).Msg("invalid video update body")
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := vh.Registration.UpdateVideo(r.Context(), slug, patch); err != nil {
		writeError(w, vh.Logger, err, "Video not found", "")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"success": true, "slug": slug})
}
