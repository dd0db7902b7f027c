// Package db wires the dataset tables into PostgreSQL for the export
// command. The in-memory dataset is the source of truth; this layer is pure
// redistribution plumbing.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/nzcrash/config"
	"github.com/padraicbc/nzcrash/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// CreateTables creates the four dataset tables, parent first, and enforces
// the keys the loader already validated: crashes.id is the primary key and
// (id, vehicle_id) is unique in vehicles.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Crash)(nil),
		(*models.Vehicle)(nil),
		(*models.ObjectStruck)(nil),
		(*models.Cause)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'vehicles_no_dupes') THEN ALTER TABLE vehicles ADD CONSTRAINT vehicles_no_dupes UNIQUE (id, vehicle_id); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
