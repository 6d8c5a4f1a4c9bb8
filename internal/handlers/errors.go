package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/utils"
)

// writeError maps service and store errors to the catalog's error statuses.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error, notFound, conflict string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.WriteError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, models.ErrInvalidRequest):
		utils.WriteError(w, http.StatusBadRequest, "Bad Request")
	case errors.Is(err, models.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, notFound)
	case errors.Is(err, models.ErrConflict):
		utils.WriteError(w, http.StatusConflict, conflict)
	default:
		logger.Error().Err(err).Msg("request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// pageParams reads page and limit, clamping limit to max and page to the
// largest page whose offset still fits in an int.
func pageParams(r *http.Request, defaultLimit, max int) (int, int) {
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", defaultLimit)
	if max > 0 && limit > max {
		limit = max
	}
	if limit > 0 && page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return page, limit
}
