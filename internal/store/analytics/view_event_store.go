package analytics

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/store"
)

var _ store.ViewEventStore = (*ClickhouseViewEventStore)(nil)

// ClickhouseViewEventStore keeps the view log in ClickHouse instead of Postgres.
type ClickhouseViewEventStore struct {
	conn driver.Conn
}

func NewClickhouseViewEventStore(conn driver.Conn) *ClickhouseViewEventStore {
	return &ClickhouseViewEventStore{conn: conn}
}

func (c *ClickhouseViewEventStore) RecordView(ctx context.Context, event models.ViewEvent) error {
	var botFlag uint8
	if event.BotFlag {
		botFlag = 1
	}

	err := c.conn.Exec(ctx,
		`INSERT INTO view_events (video_id, bot_flag, user_agent) VALUES (?, ?, ?)`,
		event.VideoID, botFlag, event.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to insert view event: %w", err)
	}
	return nil
}

func (c *ClickhouseViewEventStore) CountViewsByVideo(ctx context.Context) (map[uuid.UUID]int64, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT video_id, count()
		FROM view_events
		WHERE bot_flag = 0
		GROUP BY video_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count view events: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var id uuid.UUID
		var n uint64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan view count row: %w", err)
		}
		counts[id] = int64(n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over view count rows: %w", err)
	}

	return counts, nil
}
