package models

import (
	"time"

	"github.com/google/uuid"
)

type VideoType string

const (
	VideoTypeNormal    VideoType = "normal"
	VideoTypeExclusive VideoType = "exclusive"
)

type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
)

const DefaultResolution = "1080p"

func (t VideoType) Valid() bool {
	return t == VideoTypeNormal || t == VideoTypeExclusive
}

func (o Orientation) Valid() bool {
	return o == OrientationLandscape || o == OrientationPortrait
}

type Video struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Type        VideoType   `json:"type"`
	ModelID     uuid.UUID   `json:"modelId"`
	Duration    int         `json:"duration"`
	Resolution  string      `json:"resolution"`
	Orientation Orientation `json:"orientation"`
	Thumbnail   string      `json:"thumbnail"`
	MediaURL    string      `json:"mediaUrl"`
	PreviewURL  string      `json:"previewUrl"`
	IsPublished bool        `json:"isPublished"`
	Views       int64       `json:"views"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// VideoWithCreator is a video row joined with its owning creator's summary.
type VideoWithCreator struct {
	Video
	Model CreatorSummary `json:"model"`
}

type VideoDetail struct {
	VideoWithCreator
	Tags []Tag `json:"tags"`
}

// VideoSummary is the narrow projection returned by search.
type VideoSummary struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Thumbnail string `json:"thumbnail"`
}

// VideoProbe is returned by the slug existence check.
type VideoProbe struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Thumbnail string    `json:"thumbnail"`
	Views     int64     `json:"views"`
}

// VideoPatch holds the fields of a partial video update. Nil fields are left unchanged.
type VideoPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Type        *VideoType   `json:"type"`
	Thumbnail   *string      `json:"thumbnail"`
	Resolution  *string      `json:"resolution"`
	Orientation *Orientation `json:"orientation"`
	IsPublished *bool        `json:"isPublished"`
	Duration    *int         `json:"duration"`
}
