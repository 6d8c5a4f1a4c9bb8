package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"github.com/grvbrk/provideo_server/internal/config"
)

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func ConnectPGDB(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	tries := cfg.ConnectTries
	if tries < 1 {
		tries = 1
	}

	for i := 1; i <= tries; i++ {
		db, err = sql.Open("pgx", cfg.URL)
		if err != nil {
			log.Warn().Err(err).Int("attempt", i).Msg("failed to open DB")
		} else {
			err = db.PingContext(ctx)
			if err == nil {
				db.SetMaxOpenConns(cfg.MaxOpenConns)
				db.SetMaxIdleConns(cfg.MaxIdleConns)
				db.SetConnMaxLifetime(time.Hour)
				log.Info().Msg("connected to database")
				return db, nil
			}
			_ = db.Close()
			log.Warn().Err(err).Int("attempt", i).Msg("DB not ready")
		}

		if i == tries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", tries, err)
}

func MigrateFS(db *sql.DB, migrationsFS fs.FS, dir string) error {
	goose.SetBaseFS(migrationsFS)
	defer func() {
		goose.SetBaseFS(nil)
	}()
	return Migrate(db, dir)
}

func Migrate(db *sql.DB, dir string) error {
	err := goose.SetDialect("postgres")
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	err = goose.Up(db, dir)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE wildcards in q.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
