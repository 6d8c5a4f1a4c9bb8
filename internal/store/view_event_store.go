package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/grvbrk/provideo_server/internal/models"
)

// ViewEventStore is the append-only log of video detail views.
type ViewEventStore interface {
	RecordView(ctx context.Context, event models.ViewEvent) error
	CountViewsByVideo(ctx context.Context) (map[uuid.UUID]int64, error)
}

type PostgresViewEventStore struct {
	db *sql.DB
}

func NewPostgresViewEventStore(db *sql.DB) *PostgresViewEventStore {
	if db == nil {
		panic("db cannot be nil for PostgresViewEventStore")
	}
	return &PostgresViewEventStore{db: db}
}

func (pg *PostgresViewEventStore) RecordView(ctx context.Context, event models.ViewEvent) error {
	_, err := pg.db.ExecContext(ctx,
		`INSERT INTO view_events (video_id, bot_flag, user_agent) VALUES ($1, $2, $3)`,
		event.VideoID, event.BotFlag, event.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to insert view event: %w", err)
	}
	return nil
}

// CountViewsByVideo returns the number of non-bot views per video.
func (pg *PostgresViewEventStore) CountViewsByVideo(ctx context.Context) (map[uuid.UUID]int64, error) {
	rows, err := pg.db.QueryContext(ctx, `
		SELECT video_id, COUNT(*)
		FROM view_events
		WHERE bot_flag = FALSE
		GROUP BY video_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count view events: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var id uuid.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan view count row: %w", err)
		}
		counts[id] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over view count rows: %w", err)
	}

	return counts, nil
}
