package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grvbrk/provideo_server/internal/models"
)

type PostgresCreatorStore struct {
	db *sql.DB
}

func NewPostgresCreatorStore(db *sql.DB) *PostgresCreatorStore {
	if db == nil {
		panic("db cannot be nil for PostgresCreatorStore")
	}
	return &PostgresCreatorStore{db: db}
}

type CreatorStore interface {
	ListCreators(ctx context.Context) ([]models.Creator, error)
	GetCreatorByID(ctx context.Context, id uuid.UUID) (*models.Creator, error)
	GetCreatorBySlug(ctx context.Context, slug string) (*models.Creator, error)
	SearchCreators(ctx context.Context, query string, limit int) ([]models.CreatorSummary, error)
	CreateCreator(ctx context.Context, creator *models.Creator) error
	UpdateCreator(ctx context.Context, id uuid.UUID, patch models.CreatorPatch) error
	RecountVideos(ctx context.Context, id uuid.UUID) (int, error)
}

const creatorColumns = `id, name, slug, bio, thumbnail, videos_count, created_at`

func scanCreator(row rowScanner) (*models.Creator, error) {
	var c models.Creator
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Bio, &c.Thumbnail, &c.VideosCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (pg *PostgresCreatorStore) ListCreators(ctx context.Context) ([]models.Creator, error) {
	rows, err := pg.db.QueryContext(ctx, `SELECT `+creatorColumns+` FROM models ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	defer rows.Close()

	creators := []models.Creator{}
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator row: %w", err)
		}
		creators = append(creators, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over creator rows: %w", err)
	}

	return creators, nil
}

func (pg *PostgresCreatorStore) GetCreatorByID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	c, err := scanCreator(pg.db.QueryRowContext(ctx, `SELECT `+creatorColumns+` FROM models WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator by id: %w", err)
	}
	return c, nil
}

func (pg *PostgresCreatorStore) GetCreatorBySlug(ctx context.Context, slug string) (*models.Creator, error) {
	c, err := scanCreator(pg.db.QueryRowContext(ctx, `SELECT `+creatorColumns+` FROM models WHERE slug = $1`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator by slug: %w", err)
	}
	return c, nil
}

func (pg *PostgresCreatorStore) SearchCreators(ctx context.Context, query string, limit int) ([]models.CreatorSummary, error) {
	rows, err := pg.db.QueryContext(ctx, `
		SELECT name, slug, thumbnail
		FROM models
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT $2
	`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search creators: %w", err)
	}
	defer rows.Close()

	results := []models.CreatorSummary{}
	for rows.Next() {
		var s models.CreatorSummary
		if err := rows.Scan(&s.Name, &s.Slug, &s.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan creator search row: %w", err)
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over creator search rows: %w", err)
	}

	return results, nil
}

func (pg *PostgresCreatorStore) CreateCreator(ctx context.Context, c *models.Creator) error {
	query := `
		INSERT INTO models (id, name, slug, bio, thumbnail, videos_count)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING created_at
	`

	err := pg.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Slug, c.Bio, c.Thumbnail).Scan(&c.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("a creator with slug %q already exists: %w", c.Slug, models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert creator: %w", err)
	}

	c.VideosCount = 0
	return nil
}

func (pg *PostgresCreatorStore) UpdateCreator(ctx context.Context, id uuid.UUID, patch models.CreatorPatch) error {
	query := `
		UPDATE models
		SET name = COALESCE($1, name),
			bio = COALESCE($2, bio),
			thumbnail = COALESCE($3, thumbnail),
			slug = COALESCE($4, slug)
		WHERE id = $5
	`

	res, err := pg.db.ExecContext(ctx, query, patch.Name, patch.Bio, patch.Thumbnail, patch.Slug, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("a creator with this slug already exists: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update creator: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}

	return nil
}

// RecountVideos recomputes videos_count from the creator's published videos.
func (pg *PostgresCreatorStore) RecountVideos(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE models
		SET videos_count = (
			SELECT COUNT(*) FROM videos WHERE model_id = $1 AND is_published = TRUE
		)
		WHERE id = $1
		RETURNING videos_count
	`

	var count int
	err := pg.db.QueryRowContext(ctx, query, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to recount creator videos: %w", err)
	}

	return count, nil
}
