package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/grvbrk/provideo_server/internal/models"
)

type PostgresVideoStore struct {
	db *sql.DB
}

func NewPostgresVideoStore(db *sql.DB) *PostgresVideoStore {
	if db == nil {
		panic("db cannot be nil for PostgresVideoStore")
	}
	return &PostgresVideoStore{db: db}
}

type VideoStore interface {
	ListPublished(ctx context.Context, limit, offset int) ([]models.VideoWithCreator, int, error)
	ListPublishedByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.Video, int, error)
	ListPublishedByTag(ctx context.Context, tagID uuid.UUID, limit, offset int) ([]models.VideoWithCreator, int, error)
	ListSlugsByCreator(ctx context.Context, creatorID uuid.UUID) ([]string, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.VideoDetail, error)
	ProbeBySlug(ctx context.Context, slug string) (*models.VideoProbe, error)
	Search(ctx context.Context, query string, limit int) ([]models.VideoSummary, error)
	CreateVideo(ctx context.Context, video *models.Video) error
	UpdateVideo(ctx context.Context, slug string, patch models.VideoPatch) (uuid.UUID, error)
	SetViews(ctx context.Context, counts map[uuid.UUID]int64) error
}

const videoColumns = `
	v.id,
	v.title,
	v.slug,
	v.description,
	v.type,
	v.model_id,
	v.duration,
	v.resolution,
	v.orientation,
	v.thumbnail,
	v.media_url,
	v.preview_url,
	v.is_published,
	v.views,
	v.created_at`

const creatorSummaryColumns = `
	m.name,
	m.slug,
	m.thumbnail`

func scanVideo(row rowScanner, v *models.Video, extra ...interface{}) error {
	dest := []interface{}{
		&v.ID,
		&v.Title,
		&v.Slug,
		&v.Description,
		&v.Type,
		&v.ModelID,
		&v.Duration,
		&v.Resolution,
		&v.Orientation,
		&v.Thumbnail,
		&v.MediaURL,
		&v.PreviewURL,
		&v.IsPublished,
		&v.Views,
		&v.CreatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func scanVideoWithCreator(row rowScanner) (models.VideoWithCreator, error) {
	var v models.VideoWithCreator
	err := scanVideo(row, &v.Video, &v.Model.Name, &v.Model.Slug, &v.Model.Thumbnail)
	return v, err
}

func (pg *PostgresVideoStore) countRows(ctx context.Context, query string, args ...interface{}) (int, error) {
	var total int
	if err := pg.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get total video count: %w", err)
	}
	return total, nil
}

func (pg *PostgresVideoStore) queryVideosWithCreator(ctx context.Context, query string, args ...interface{}) ([]models.VideoWithCreator, error) {
	rows, err := pg.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoWithCreator{}
	for rows.Next() {
		v, err := scanVideoWithCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video rows: %w", err)
	}

	return videos, nil
}

func (pg *PostgresVideoStore) ListPublished(ctx context.Context, limit, offset int) ([]models.VideoWithCreator, int, error) {
	total, err := pg.countRows(ctx, `SELECT COUNT(*) FROM videos WHERE is_published = TRUE`)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM videos v
		JOIN models m ON v.model_id = m.id
		WHERE v.is_published = TRUE
		ORDER BY v.created_at DESC
		LIMIT $1 OFFSET $2
	`, videoColumns, creatorSummaryColumns)

	videos, err := pg.queryVideosWithCreator(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

func (pg *PostgresVideoStore) ListPublishedByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.Video, int, error) {
	total, err := pg.countRows(ctx,
		`SELECT COUNT(*) FROM videos WHERE model_id = $1 AND is_published = TRUE`, creatorID)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		WHERE v.model_id = $1 AND v.is_published = TRUE
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3
	`, videoColumns)

	rows, err := pg.db.QueryContext(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get creator videos: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		if err := scanVideo(rows, &v); err != nil {
			return nil, 0, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over video rows: %w", err)
	}

	return videos, total, nil
}

func (pg *PostgresVideoStore) ListPublishedByTag(ctx context.Context, tagID uuid.UUID, limit, offset int) ([]models.VideoWithCreator, int, error) {
	total, err := pg.countRows(ctx, `
		SELECT COUNT(*)
		FROM video_tags vt
		JOIN videos v ON v.id = vt.video_id
		WHERE vt.tag_id = $1 AND v.is_published = TRUE
	`, tagID)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM videos v
		JOIN video_tags vt ON v.id = vt.video_id
		JOIN models m ON v.model_id = m.id
		WHERE vt.tag_id = $1 AND v.is_published = TRUE
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3
	`, videoColumns, creatorSummaryColumns)

	videos, err := pg.queryVideosWithCreator(ctx, query, tagID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// ListSlugsByCreator returns the slugs of the creator's published videos.
func (pg *PostgresVideoStore) ListSlugsByCreator(ctx context.Context, creatorID uuid.UUID) ([]string, error) {
	rows, err := pg.db.QueryContext(ctx, `
		SELECT slug
		FROM videos
		WHERE model_id = $1 AND is_published = TRUE
	`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list video slugs: %w", err)
	}
	defer rows.Close()

	slugs := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan video slug: %w", err)
		}
		slugs = append(slugs, slug)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video slugs: %w", err)
	}

	return slugs, nil
}

func (pg *PostgresVideoStore) GetPublishedBySlug(ctx context.Context, slug string) (*models.VideoDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM videos v
		JOIN models m ON v.model_id = m.id
		WHERE v.slug = $1 AND v.is_published = TRUE
	`, videoColumns, creatorSummaryColumns)

	v, err := scanVideoWithCreator(pg.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video by slug: %w", err)
	}

	rows, err := pg.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, t.description
		FROM tags t
		JOIN video_tags vt ON t.id = vt.tag_id
		WHERE vt.video_id = $1
		ORDER BY t.name ASC
	`, v.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video tags: %w", err)
	}
	defer rows.Close()

	detail := &models.VideoDetail{VideoWithCreator: v, Tags: []models.Tag{}}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		detail.Tags = append(detail.Tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over tag rows: %w", err)
	}

	return detail, nil
}

func (pg *PostgresVideoStore) ProbeBySlug(ctx context.Context, slug string) (*models.VideoProbe, error) {
	query := `
		SELECT id, title, slug, thumbnail, views
		FROM videos
		WHERE slug = $1
	`

	var p models.VideoProbe
	err := pg.db.QueryRowContext(ctx, query, slug).Scan(&p.ID, &p.Title, &p.Slug, &p.Thumbnail, &p.Views)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to probe video slug: %w", err)
	}

	return &p, nil
}

func (pg *PostgresVideoStore) Search(ctx context.Context, query string, limit int) ([]models.VideoSummary, error) {
	rows, err := pg.db.QueryContext(ctx, `
		SELECT title, slug, thumbnail
		FROM videos
		WHERE title ILIKE $1 AND is_published = TRUE
		ORDER BY created_at DESC
		LIMIT $2
	`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	defer rows.Close()

	results := []models.VideoSummary{}
	for rows.Next() {
		var s models.VideoSummary
		if err := rows.Scan(&s.Title, &s.Slug, &s.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan video search row: %w", err)
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video search rows: %w", err)
	}

	return results, nil
}

func (pg *PostgresVideoStore) CreateVideo(ctx context.Context, v *models.Video) error {
	query := `
		INSERT INTO videos (id, title, slug, description, type, model_id, duration, resolution, orientation, thumbnail, media_url, preview_url, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING views, created_at
	`

	err := pg.db.QueryRowContext(ctx, query,
		v.ID,
		v.Title,
		v.Slug,
		v.Description,
		v.Type,
		v.ModelID,
		v.Duration,
		v.Resolution,
		v.Orientation,
		v.Thumbnail,
		v.MediaURL,
		v.PreviewURL,
		v.IsPublished,
	).Scan(&v.Views, &v.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("video slug %q already exists: %w", v.Slug, models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// UpdateVideo applies the non-nil fields of patch and returns the owning creator's id.
func (pg *PostgresVideoStore) UpdateVideo(ctx context.Context, slug string, patch models.VideoPatch) (uuid.UUID, error) {
	query := `
		UPDATE videos
		SET title = COALESCE($1, title),
			description = COALESCE($2, description),
			type = COALESCE($3, type),
			thumbnail = COALESCE($4, thumbnail),
			resolution = COALESCE($5, resolution),
			orientation = COALESCE($6, orientation),
			is_published = COALESCE($7, is_published),
			duration = COALESCE($8, duration)
		WHERE slug = $9
		RETURNING model_id
	`

	var videoType, orientation *string
	if patch.Type != nil {
		s := string(*patch.Type)
		videoType = &s
	}
	if patch.Orientation != nil {
		s := string(*patch.Orientation)
		orientation = &s
	}

	var modelID uuid.UUID
	err := pg.db.QueryRowContext(ctx, query,
		patch.Title,
		patch.Description,
		videoType,
		patch.Thumbnail,
		patch.Resolution,
		orientation,
		patch.IsPublished,
		patch.Duration,
		slug,
	).Scan(&modelID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, models.ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to update video: %w", err)
	}

	return modelID, nil
}

// SetViews makes counts the complete set of view totals: every video in counts gets its
// count and every other video is reset to zero, in one transaction.
func (pg *PostgresVideoStore) SetViews(ctx context.Context, counts map[uuid.UUID]int64) error {
	ids := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return strings.Compare(ids[i].String(), ids[j].String()) < 0
	})

	tx, err := pg.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	reset, args := resetViewsQuery(ids)
	if _, err := tx.ExecContext(ctx, reset, args...); err != nil {
		return fmt.Errorf("failed to reset views: %w", err)
	}

	for _, id := range ids {
		_, err := tx.ExecContext(ctx,
			`UPDATE videos SET views = $2 WHERE id = $1 AND views <> $2`, id, counts[id])
		if err != nil {
			return fmt.Errorf("failed to set views for video %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func resetViewsQuery(keep []uuid.UUID) (string, []interface{}) {
	query := `UPDATE videos SET views = 0 WHERE views <> 0`
	if len(keep) == 0 {
		return query, nil
	}

	placeholders := make([]string, len(keep))
	args := make([]interface{}, len(keep))
	for i, id := range keep {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return query + ` AND id NOT IN (` + strings.Join(placeholders, ", ") + `)`, args
}
