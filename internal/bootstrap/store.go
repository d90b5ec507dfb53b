package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-account-service/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/go-account-service/internal/infrastructure/sqlite"
)

// Store is an opened user store plus whatever must be released on shutdown.
type Store struct {
	Repo   repo.UserRepository
	Driver string
	closer func()
}

func (s *Store) Close() {
	if s != nil && s.closer != nil {
		s.closer()
	}
}

// OpenStore opens the user store selected by cfg.DBDriver and brings its schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &Store{Repo: pginfra.NewUserRepository(pool), Driver: "postgres", closer: pool.Close}, nil

	case "sqlite":
		db, err := sqliteinfra.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		r := sqliteinfra.NewUserRepository(db)
		if err := r.Init(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite schema: %w", err)
		}
		return &Store{Repo: r, Driver: "sqlite", closer: func() { _ = db.Close() }}, nil

	case "memory":
		logger.Warn("using in-memory user store; data is lost on restart")
		return &Store{Repo: memory.NewUserRepository(), Driver: "memory"}, nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

// RunMigrations applies the postgres migrations in dir through database/sql and pgx stdlib.
func RunMigrations(dsn, dir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
