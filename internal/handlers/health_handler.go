package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/utils"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	DB     Pinger
	Logger zerolog.Logger
}

func NewHealthHandler(db Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{DB: db, Logger: logger}
}

// HandlerHealth pings the database. A handler built without one reports ok.
func (hh *HealthHandler) HandlerHealth(w http.ResponseWriter, r *http.Request) {
	if hh.DB == nil {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := hh.DB.PingContext(ctx); err != nil {
		hh.Logger.Error().Err(err).Msg("health check failed")
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.Envelope{"status": "unavailable"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"status": "ok"})
}
