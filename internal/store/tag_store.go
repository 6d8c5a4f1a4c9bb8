package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grvbrk/provideo_server/internal/models"
)

type PostgresTagStore struct {
	db *sql.DB
}

func NewPostgresTagStore(db *sql.DB) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil for PostgresTagStore")
	}
	return &PostgresTagStore{db: db}
}

type TagStore interface {
	ListTagsWithCounts(ctx context.Context) ([]models.TagWithCount, error)
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	FindOrCreateTag(ctx context.Context, name, slug string) (*models.Tag, error)
	LinkVideo(ctx context.Context, videoID, tagID uuid.UUID) error
}

func (pg *PostgresTagStore) ListTagsWithCounts(ctx context.Context) ([]models.TagWithCount, error) {
	rows, err := pg.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, t.description, COUNT(vt.video_id) AS video_count
		FROM tags t
		LEFT JOIN video_tags vt ON t.id = vt.tag_id
		GROUP BY t.id
		ORDER BY video_count DESC, t.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []models.TagWithCount{}
	for rows.Next() {
		var t models.TagWithCount
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.VideoCount); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over tag rows: %w", err)
	}

	return tags, nil
}

func (pg *PostgresTagStore) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	err := pg.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM tags WHERE slug = $1`, slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag by slug: %w", err)
	}
	return &t, nil
}

// FindOrCreateTag returns the tag with slug, inserting it first when it does not exist.
func (pg *PostgresTagStore) FindOrCreateTag(ctx context.Context, name, slug string) (*models.Tag, error) {
	_, err := pg.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, slug, description)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (slug) DO NOTHING
	`, uuid.New(), name, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}

	tag, err := pg.GetTagBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag %q: %w", slug, err)
	}
	return tag, nil
}

// LinkVideo associates a tag with a video. Linking an existing pair is a no-op.
func (pg *PostgresTagStore) LinkVideo(ctx context.Context, videoID, tagID uuid.UUID) error {
	_, err := pg.db.ExecContext(ctx, `
		INSERT INTO video_tags (video_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (video_id, tag_id) DO NOTHING
	`, videoID, tagID)
	if err != nil {
		return fmt.Errorf("failed to link tag to video: %w", err)
	}
	return nil
}
