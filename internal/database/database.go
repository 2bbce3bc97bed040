package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"macrotracker/internal/config"
	"macrotracker/internal/logging"
)

const DriverName = "postgres"

// DB wraps the connection pool together with a statement builder that emits
// PostgreSQL placeholders.
type DB struct {
	*sqlx.DB
	SQ sq.StatementBuilderType
}

func New(db *sqlx.DB) *DB {
	return &DB{
		DB: db,
		SQ: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	db, err := sqlx.Open(DriverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.DB().WithField("max_open_conns", cfg.MaxOpenConns).Debug("Connected to database")
	return New(db), nil
}
