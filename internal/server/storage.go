package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/preston-bernstein/vmhl-standings/internal/config"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/teamstore"
)

var (
	openDatabase  = func(dsn string) (*sqlx.DB, error) { return sqlx.Open("postgres", dsn) }
	runMigrations = teamstore.Migrate
)

// storage is the repository selected for this process plus its cleanup.
type storage struct {
	repo  teamstore.Repository
	trm   teamstore.TransactionManager
	close func() error
}

func buildStorage(ctx context.Context, cfg config.ServerConfig, logger *slog.Logger) (storage, error) {
	if !cfg.UsesDatabase() {
		repo := teamstore.NewMemoryRepository()
		if cfg.SeedFixtures {
			repo = teamstore.NewSeededMemoryRepository()
		}
		logging.Info(logger, "using in-memory repository", slog.Bool("seeded", cfg.SeedFixtures))
		return storage{repo: repo, trm: &teamstore.LockManager{}, close: func() error { return nil }}, nil
	}

	db, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return storage{}, err
	}
	if cfg.MigrateOnStart {
		if err := runMigrations(db.DB, logger); err != nil {
			_ = db.Close()
			return storage{}, err
		}
	}
	return storage{
		repo:  teamstore.NewPostgresRepository(db, trmsqlx.DefaultCtxGetter),
		trm:   manager.Must(trmsqlx.NewDefaultFactory(db)),
		close: db.Close,
	}, nil
}

// connectDatabase opens the pool and retries the first ping with exponential
// backoff until cfg.ConnectTimeout elapses.
func connectDatabase(ctx context.Context, cfg config.ServerConfig, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout

	attempt := 0
	ping := func() error {
		attempt++
		return db.PingContext(ctx)
	}
	notify := func(err error, wait time.Duration) {
		logging.Warn(logger, "database not reachable, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("err", err),
		)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	logging.Info(logger, "database connected", slog.Int("attempts", attempt))
	return db, nil
}
