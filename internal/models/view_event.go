package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ViewEvent struct {
	VideoID   uuid.UUID `json:"videoId"`
	BotFlag   bool      `json:"botFlag"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

var botMarkers = []string{"bot", "crawler", "spider"}

// IsBotUserAgent reports whether a User-Agent should be excluded from view counts.
// An empty agent counts as a bot.
func IsBotUserAgent(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}
