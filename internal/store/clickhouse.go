package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/migrations/analytics"
)

func ConnectClickhouse(ctx context.Context, cfg config.ClickHouseConfig) (driver.Conn, error) {
	var conn driver.Conn
	var err error

	for i := 1; i <= 10; i++ {
		conn, err = clickhouse.Open(&clickhouse.Options{
			Addr: []string{cfg.URL},
			Auth: clickhouse.Auth{
				Database: cfg.Database,
				Username: cfg.Username,
				Password: cfg.Password,
			},
			ClientInfo: clickhouse.ClientInfo{
				Products: []struct {
					Name    string
					Version string
				}{
					{Name: "provideo-catalog-server", Version: "1.0"},
				},
			},
		})

		if err == nil {
			err = conn.Ping(ctx)
			if err == nil {
				log.Info().Msg("connected to ClickHouse")
				return conn, nil
			}
		}

		log.Warn().Err(err).Int("attempt", i).Msg("ClickHouse not ready")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	return nil, fmt.Errorf("could not connect to ClickHouse after multiple attempts: %w", err)
}

func MigrateClickhouse(cfg config.ClickHouseConfig) error {
	src, err := iofs.New(analytics.FS, ".")
	if err != nil {
		return fmt.Errorf("migration source error: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, clickhouseMigrateURL(cfg))
	if err != nil {
		return fmt.Errorf("migration init error: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// clickhouseMigrateURL builds the golang-migrate DSN with escaped credentials.
func clickhouseMigrateURL(cfg config.ClickHouseConfig) string {
	u := url.URL{
		Scheme:   "clickhouse",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.URL,
		Path:     "/" + cfg.Database,
		RawQuery: "x-multi-statement=true",
	}
	return u.String()
}
