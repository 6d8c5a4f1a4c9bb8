package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/store"
	"github.com/grvbrk/provideo_server/internal/utils"
)

type TagHandler struct {
	TagStore   store.TagStore
	VideoStore store.VideoStore
	Catalog    config.CatalogConfig
	Logger     zerolog.Logger
}

func NewTagHandler(tagStore store.TagStore, videoStore store.VideoStore, catalog config.CatalogConfig, logger zerolog.Logger) *TagHandler {
	return &TagHandler{
		TagStore:   tagStore,
		VideoStore: videoStore,
		Catalog:    catalog,
		Logger:     logger,
	}
}

func (th *TagHandler) HandlerGetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := th.TagStore.ListTagsWithCounts(r.Context())
	if err != nil {
		th.Logger.Error().Err(err).Msg("error listing tags")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, tags)
}

func (th *TagHandler) HandlerGetTagBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	tag, err := th.TagStore.GetTagBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, th.Logger, err, "Tag not found", "")
		return
	}

	page, limit := pageParams(r, th.Catalog.DetailPageSize, th.Catalog.MaxPageSize)
	p := models.NewPagination(page, limit, 0)

	videos, total, err := th.VideoStore.ListPublishedByTag(r.Context(), tag.ID, limit, p.Offset())
	if err != nil {
		th.Logger.Error().Err(err).Str("slug", slug).Msg("error listing tag videos")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"tag":        tag,
		"videos":     videos,
		"pagination": models.NewPagination(page, limit, total),
	})
}
