package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/store"
	"github.com/grvbrk/provideo_server/internal/utils"
)

const (
	minSearchLen       = 2
	searchVideoLimit   = 5
	searchCreatorLimit = 3
)

type SearchHandler struct {
	VideoStore   store.VideoStore
	CreatorStore store.CreatorStore
	Logger       zerolog.Logger
}

func NewSearchHandler(videoStore store.VideoStore, creatorStore store.CreatorStore, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		VideoStore:   videoStore,
		CreatorStore: creatorStore,
		Logger:       logger,
	}
}

func (sh *SearchHandler) HandlerSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < minSearchLen {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{
			"videos": []models.VideoSummary{},
			"models": []models.CreatorSummary{},
		})
		return
	}

	videos, err := sh.VideoStore.Search(r.Context(), q, searchVideoLimit)
	if err != nil {
		sh.Logger.Error().Err(err).Str("q", q).Msg("error searching videos")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	creators, err := sh.CreatorStore.SearchCreators(r.Context(), q, searchCreatorLimit)
	if err != nil {
		sh.Logger.Error().Err(err).Str("q", q).Msg("error searching models")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"videos": videos,
		"models": creators,
	})
}
