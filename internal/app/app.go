package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/auth"
	"github.com/grvbrk/provideo_server/internal/config"
	"github.com/grvbrk/provideo_server/internal/events"
	"github.com/grvbrk/provideo_server/internal/handlers"
	"github.com/grvbrk/provideo_server/internal/middlewares"
	"github.com/grvbrk/provideo_server/internal/services"
	"github.com/grvbrk/provideo_server/internal/store"
	"github.com/grvbrk/provideo_server/internal/store/analytics"
	"github.com/grvbrk/provideo_server/migrations"
)

type Application struct {
	Config            *config.Config
	Logger            zerolog.Logger
	DB                *sql.DB
	RedisClient       *redis.Client
	DBConn            driver.Conn
	Publisher         events.Publisher
	AdminOauth        auth.AdminOAuth
	MiddlewareHandler *middlewares.MiddlewareHandler
	VideoHandler      *handlers.VideoHandler
	ModelHandler      *handlers.ModelHandler
	TagHandler        *handlers.TagHandler
	SearchHandler     *handlers.SearchHandler
	UploadHandler     *handlers.UploadHandler
	HealthHandler     *handlers.HealthHandler
	ViewAggregator    *services.ViewAggregator
}

// Stores bundles the persistence dependencies the handlers are built from.
type Stores struct {
	Videos     store.VideoStore
	Creators   store.CreatorStore
	Tags       store.TagStore
	ViewEvents store.ViewEventStore
	Cache      store.VideoCache
}

func NewApplication(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Application, error) {
	pgDB, err := store.ConnectPGDB(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	if err := store.MigrateFS(pgDB, migrations.FS, "."); err != nil {
		_ = pgDB.Close()
		return nil, fmt.Errorf("postgres migration failed: %w", err)
	}
	logger.Info().Msg("database migrated")

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		DB:        pgDB,
		Publisher: events.NopPublisher{},
	}

	stores := Stores{
		Videos:     store.NewPostgresVideoStore(pgDB),
		Creators:   store.NewPostgresCreatorStore(pgDB),
		Tags:       store.NewPostgresTagStore(pgDB),
		ViewEvents: store.NewPostgresViewEventStore(pgDB),
		Cache:      store.NopVideoCache{},
	}

	if cfg.Redis.Addr != "" {
		client, err := store.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.RedisClient = client
		stores.Cache = store.NewRedisVideoCache(client, cfg.Redis.CacheTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("video cache enabled")
	}

	if cfg.ClickHouse.URL != "" {
		conn, err := store.ConnectClickhouse(ctx, cfg.ClickHouse)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("error connecting to clickhouse: %w", err)
		}
		app.DBConn = conn

		if err := store.MigrateClickhouse(cfg.ClickHouse); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("clickhouse migration failed: %w", err)
		}
		stores.ViewEvents = analytics.NewClickhouseViewEventStore(conn)
		logger.Info().Msg("view events stored in clickhouse")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.Publisher = producer
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("catalog events enabled")
	}

	var admins middlewares.AdminSessions
	if cfg.Auth.GoogleClientID != "" {
		oauth := auth.NewAdminGoogleOauth(
			logger.With().Str("component", "admin").Logger(),
			auth.NewSessionStore(cfg.Auth, cfg.Server.Production()),
			cfg.Auth,
		)
		app.AdminOauth = oauth
		admins = oauth
	}

	app.wire(stores, admins)
	return app, nil
}

// NewWithStores builds an Application over already constructed stores. Nothing is connected or migrated.
// A nil db leaves /healthz without a dependency to ping.
func NewWithStores(cfg *config.Config, logger zerolog.Logger, stores Stores, publisher events.Publisher, admins middlewares.AdminSessions, db handlers.Pinger) *Application {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if stores.Cache == nil {
		stores.Cache = store.NopVideoCache{}
	}
	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Publisher: publisher,
	}
	app.wire(stores, admins)
	app.HealthHandler = handlers.NewHealthHandler(db, logger)
	return app
}

func (app *Application) wire(stores Stores, admins middlewares.AdminSessions) {
	cfg := app.Config
	logger := app.Logger

	registration := services.NewRegistrationService(
		stores.Videos, stores.Creators, stores.Tags, stores.Cache, app.Publisher,
		logger.With().Str("component", "registration").Logger(),
	)

	app.ViewAggregator = services.NewViewAggregator(
		stores.ViewEvents, stores.Videos, cfg.Catalog.ViewAggregateInterval,
		logger.With().Str("component", "view_aggregator").Logger(),
	)

	app.MiddlewareHandler = middlewares.NewMiddlewareHandler(logger, cfg.Auth, admins)
	app.VideoHandler = handlers.NewVideoHandler(stores.Videos, stores.ViewEvents, stores.Cache, registration, cfg.Catalog, logger)
	app.ModelHandler = handlers.NewModelHandler(stores.Creators, stores.Videos, registration, cfg.Catalog, logger)
	app.TagHandler = handlers.NewTagHandler(stores.Tags, stores.Videos, cfg.Catalog, logger)
	app.SearchHandler = handlers.NewSearchHandler(stores.Videos, stores.Creators, logger)
	app.UploadHandler = handlers.NewUploadHandler(registration, logger)
	if app.DB != nil {
		app.HealthHandler = handlers.NewHealthHandler(app.DB, logger)
	}
}

// Close releases every connection the application opened.
func (app *Application) Close() error {
	var errs []error
	if app.Publisher != nil {
		errs = append(errs, app.Publisher.Close())
	}
	if app.RedisClient != nil {
		errs = append(errs, app.RedisClient.Close())
	}
	if app.DBConn != nil {
		errs = append(errs, app.DBConn.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
