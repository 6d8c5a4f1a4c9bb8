package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHandlerHealth(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		wantCode int
		wantBody string
	}{
		{"database up", stubPinger{}, http.StatusOK, `{"status":"ok"}`},
		{"database down", stubPinger{err: errors.New("conn refused")}, http.StatusServiceUnavailable, `{"status":"unavailable"}`},
		{"no database", nil, http.StatusOK, `{"status":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, zerolog.Nop())
			rec := httptest.NewRecorder()

			assert.NotPanics(t, func() {
				h.HandlerHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			})
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
