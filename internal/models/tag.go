package models

import "github.com/google/uuid"

type Tag struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
}

type TagWithCount struct {
	Tag
	VideoCount int `json:"videoCount"`
}
