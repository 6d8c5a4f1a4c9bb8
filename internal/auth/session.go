package auth

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"github.com/grvbrk/provideo_server/internal/config"
)

const AdminSessionName = "provideo_admin_session"

// NewSessionStore builds the admin cookie store. Without configured keys a random pair
// is generated, so sessions do not survive a restart.
func NewSessionStore(cfg config.AuthConfig, production bool) *sessions.CookieStore {
	authKey := []byte(cfg.SessionAuthKey)
	encryptionKey := []byte(cfg.SessionEncryptionKey)

	if len(authKey) == 0 {
		log.Warn().Msg("SESSION_AUTH_KEY not set, generating an ephemeral admin session key")
		authKey = securecookie.GenerateRandomKey(64)
		encryptionKey = securecookie.GenerateRandomKey(32)
	}
	switch len(encryptionKey) {
	case 16, 24, 32:
	default:
		encryptionKey = nil
	}

	store := sessions.NewCookieStore(authKey, encryptionKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	if production {
		store.Options.Secure = true
		store.Options.SameSite = http.SameSiteNoneMode
	} else {
		store.Options.Secure = false
		store.Options.SameSite = http.SameSiteLaxMode
	}

	return store
}
