package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/services"
	"github.com/grvbrk/provideo_server/internal/utils"
)

type UploadHandler struct {
	Registration *services.RegistrationService
	Logger       zerolog.Logger
}

func NewUploadHandler(registration *services.RegistrationService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		Registration: registration,
		Logger:       logger,
	}
}

// uploadRequest accepts both the snake_case keys of the upload form and camelCase aliases.
type uploadRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ModelID      string   `json:"modelId"`
	VideoURL     string   `json:"video_url"`
	MediaURL     string   `json:"mediaUrl"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Thumbnail    string   `json:"thumbnail"`
	PreviewURL   string   `json:"preview_url"`
	Duration     *int     `json:"duration"`
	Resolution   string   `json:"resolution"`
	Orientation  string   `json:"orientation"`
	Type         string   `json:"type"`
	Tags         []string `json:"tags"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (uh *UploadHandler) HandlerUploadVideo(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := uh.Registration.RegisterVideo(r.Context(), services.RegisterVideoInput{
		Title:       req.Title,
		Description: req.Description,
		CreatorRef:  req.ModelID,
		MediaURL:    firstNonEmpty(req.VideoURL, req.MediaURL),
		Thumbnail:   firstNonEmpty(req.ThumbnailURL, req.Thumbnail),
		PreviewURL:  req.PreviewURL,
		Duration:    req.Duration,
		Resolution:  req.Resolution,
		Orientation: req.Orientation,
		Type:        req.Type,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, uh.Logger, err, "Selected creator does not exist", "A video with this slug already exists")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{
		"success": true,
		"id":      video.ID,
		"slug":    video.Slug,
	})
}
