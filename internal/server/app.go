// Package server wires the project backend: PostgreSQL storage, schema
// migrations, optional seeding, and the gRPC ProjectService.
package server

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/gophfolio/internal/logging"
	"github.com/dmitrijs2005/gophfolio/internal/server/config"
	"github.com/dmitrijs2005/gophfolio/internal/server/migrations"
	"github.com/dmitrijs2005/gophfolio/internal/server/repositories/projects"

	gs "github.com/dmitrijs2005/gophfolio/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

var (
	openDB        = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
	runMigrations = migrations.Up
)

// NewApp opens the database, applies migrations and imports the seed file
// when one is configured.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	if cfg.SeedFile != "" {
		items, err := projects.ReadSeedFile(cfg.SeedFile)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := projects.Import(ctx, db, items); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(ctx, "Seed imported", "file", cfg.SeedFile, "projects", len(items))
	}

	repo := projects.NewPostgresRepository(db)
	s := gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, repo, db)

	return &App{config: cfg, logger: logger, db: db, server: s}, nil
}

// Run serves until ctx is cancelled and then closes the database.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(ctx, "db close", "error", err)
		}
	}()

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
