package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type Admin struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type AdminOAuth interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
	AuthAdmin(w http.ResponseWriter, r *http.Request)
}

type AdminGoogleOauth struct {
	Logger      zerolog.Logger
	Config      *oauth2.Config
	Store       sessions.Store
	Settings    config.AuthConfig
	UserInfoURL string
}

func NewAdminGoogleOauth(logger zerolog.Logger, store sessions.Store, cfg config.AuthConfig) *AdminGoogleOauth {
	return &AdminGoogleOauth{
		Logger: logger,
		Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  fmt.Sprintf("%s/auth/admin/google/callback", strings.TrimRight(cfg.BackendURL, "/")),
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
		Store:       store,
		Settings:    cfg,
		UserInfoURL: googleUserInfoURL,
	}
}

func (g *AdminGoogleOauth) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := g.Store.Get(r, AdminSessionName)

	state := base64.RawURLEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	session.Values["oauth_state"] = state

	if err := session.Save(r, w); err != nil {
		g.Logger.Error().Err(err).Msg("error saving admin oauth state")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	url := g.Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (g *AdminGoogleOauth) Callback(w http.ResponseWriter, r *http.Request) {
	session, err := g.Store.Get(r, AdminSessionName)
	if err != nil {
		g.Logger.Warn().Err(err).Msg("failed to decode admin session on callback")
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expected, _ := session.Values["oauth_state"].(string)
	if expected == "" || r.URL.Query().Get("state") != expected {
		g.Logger.Warn().Msg("admin oauth state mismatch")
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	delete(session.Values, "oauth_state")

	token, err := g.Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		g.Logger.Error().Err(err).Msg("error exchanging admin token")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	client := g.Config.Client(r.Context(), token)
	resp, err := client.Get(g.UserInfoURL)
	if err != nil {
		g.Logger.Error().Err(err).Msg("error getting admin info")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Image string `json:"picture"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		g.Logger.Error().Err(err).Msg("error decoding admin info")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if userInfo.Email == "" || !g.Settings.IsAdminEmail(userInfo.Email) {
		g.Logger.Warn().Str("email", userInfo.Email).Msg("login attempt by non-admin")
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	session.Values["admin_email"] = userInfo.Email
	session.Values["admin_name"] = userInfo.Name
	session.Values["admin_image"] = userInfo.Image

	if err := session.Save(r, w); err != nil {
		g.Logger.Error().Err(err).Msg("error saving admin session")
		utils.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	g.Logger.Info().Str("email", userInfo.Email).Msg("admin logged in")
	http.Redirect(w, r, g.Settings.AdminFrontendURL+"/dashboard", http.StatusSeeOther)
}

func (g *AdminGoogleOauth) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := g.Store.Get(r, AdminSessionName)

	for key := range session.Values {
		delete(session.Values, key)
	}
	session.Options.MaxAge = -1

	if err := session.Save(r, w); err != nil {
		g.Logger.Error().Err(err).Msg("error clearing admin session")
	}

	http.Redirect(w, r, g.Settings.AdminFrontendURL, http.StatusSeeOther)
}

// SessionAdmin returns the admin stored in the request's session cookie, if any.
func (g *AdminGoogleOauth) SessionAdmin(r *http.Request) (*Admin, bool) {
	session, err := g.Store.Get(r, AdminSessionName)
	if err != nil || session.IsNew {
		return nil, false
	}

	email, _ := session.Values["admin_email"].(string)
	if email == "" || !g.Settings.IsAdminEmail(email) {
		return nil, false
	}

	name, _ := session.Values["admin_name"].(string)
	image, _ := session.Values["admin_image"].(string)
	return &Admin{Email: email, Name: name, Image: image}, true
}

func (g *AdminGoogleOauth) AuthAdmin(w http.ResponseWriter, r *http.Request) {
	admin, ok := g.SessionAdmin(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Not Authenticated")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": admin})
}
