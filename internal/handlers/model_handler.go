package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/services"
	"github.com/grvbrk/provideo_server/internal/store"
	"github.com/grvbrk/provideo_server/internal/utils"
)

const slugConflictMessage = "A creator with this slug already exists"

// ModelHandler serves creator profiles. Creators are called models in the public API.
type ModelHandler struct {
	CreatorStore store.CreatorStore
	VideoStore   store.VideoStore
	Registration *services.RegistrationService
	Catalog      config.CatalogConfig
	Logger       zerolog.Logger
}

func NewModelHandler(
	creatorStore store.CreatorStore,
	videoStore store.VideoStore,
	registration *services.RegistrationService,
	catalog config.CatalogConfig,
	logger zerolog.Logger,
) *ModelHandler {
	return &ModelHandler{
		CreatorStore: creatorStore,
		VideoStore:   videoStore,
		Registration: registration,
		Catalog:      catalog,
		Logger:       logger,
	}
}

func (mh *ModelHandler) HandlerGetModels(w http.ResponseWriter, r *http.Request) {
	creators, err := mh.CreatorStore.ListCreators(r.Context())
	if err != nil {
		mh.Logger.Error().Err(err).Msg("error listing models")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, creators)
}

func (mh *ModelHandler) HandlerGetModelBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	creator, err := mh.CreatorStore.GetCreatorBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, mh.Logger, err, "Model not found", "")
		return
	}

	page, limit := pageParams(r, mh.Catalog.DetailPageSize, mh.Catalog.MaxPageSize)
	p := models.NewPagination(page, limit, 0)

	videos, total, err := mh.VideoStore.ListPublishedByCreator(r.Context(), creator.ID, limit, p.Offset())
	if err != nil {
		mh.Logger.Error().Err(err).Str("slug", slug).Msg("error listing model videos")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"model":      creator,
		"videos":     videos,
		"pagination": models.NewPagination(page, limit, total),
	})
}

func (mh *ModelHandler) HandlerCheckModelSlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slug parameter is required")
		return
	}

	creator, err := mh.CreatorStore.GetCreatorBySlug(r.Context(), slug)
	if errors.Is(err, models.ErrNotFound) {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"exists": false})
		return
	}
	if err != nil {
		mh.Logger.Error().Err(err).Str("slug", slug).Msg("error checking model slug")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=10")
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"exists": true, "id": creator.ID, "model": creator})
}

type createModelRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Bio       string `json:"bio"`
	Thumbnail string `json:"thumbnail"`
}

func (mh *ModelHandler) HandlerCreateModel(w http.ResponseWriter, r *http.Request) {
	var req createModelRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	creator, err := mh.Registration.CreateCreator(r.Context(), services.CreateCreatorInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Bio:       req.Bio,
		Thumbnail: req.Thumbnail,
	})
	if err != nil {
		writeError(w, mh.Logger, err, "Model not found", slugConflictMessage)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{
		"success": true,
		"id":      creator.ID,
		"slug":    creator.Slug,
	})
}

type updateModelRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	Bio       *string `json:"bio"`
	Thumbnail *string `json:"thumbnail"`
}

func (mh *ModelHandler) HandlerUpdateModel(w http.ResponseWriter, r *http.Request) {
	var req updateModelRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := models.CreatorPatch{
		Name:      req.Name,
		Slug:      req.Slug,
		Bio:       req.Bio,
		Thumbnail: req.Thumbnail,
	}

	if err := mh.Registration.UpdateCreator(r.Context(), req.ID, patch); err != nil {
		writeError(w, mh.Logger, err, "Model not found", slugConflictMessage)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"success": true})
}
