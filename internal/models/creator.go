package models

import (
	"time"

	"github.com/google/uuid"
)

// Creator is a model profile. It is stored in the models table.
type Creator struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Bio         string    `json:"bio"`
	Thumbnail   string    `json:"thumbnail"`
	VideosCount int       `json:"videosCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreatorSummary struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Thumbnail string `json:"thumbnail"`
}

type CreatorPatch struct {
	Name      *string
	Slug      *string
	Bio       *string
	Thumbnail *string
}

func (p CreatorPatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Bio == nil && p.Thumbnail == nil
}
