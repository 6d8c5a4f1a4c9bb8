package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/grvbrk/provideo_server/internal/models"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation message", models.Invalid("title is required"), http.StatusBadRequest, `{"error":"title is required"}`},
		{"bare invalid request", fmt.Errorf("wrap: %w", models.ErrInvalidRequest), http.StatusBadRequest, `{"error":"Bad Request"}`},
		{"not found", fmt.Errorf("lookup: %w", models.ErrNotFound), http.StatusNotFound, `{"error":"Thing not found"}`},
		{"conflict", models.ErrConflict, http.StatusConflict, `{"error":"Thing exists"}`},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zerolog.Nop(), tt.err, "Thing not found", "Thing exists")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 8},
		{"?page=4&limit=20", 4, 20},
		{"?page=0&limit=0", 1, 8},
		{"?page=x&limit=y", 1, 8},
		{"?limit=1000", 1, 100},
		{"?page=9223372036854775807&limit=8", math.MaxInt / 8, 8},
		{"?page=99999999999999999999", 1, 8},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/videos"+tt.query, nil)
		page, limit := pageParams(r, 8, 100)
		assert.Equal(t, tt.wantPage, page, tt.query)
		assert.Equal(t, tt.wantLimit, limit, tt.query)
		assert.GreaterOrEqual(t, (page-1)*limit, 0, tt.query)
	}
}
