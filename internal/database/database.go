package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"stockmaster_backend/internal/config"
	"stockmaster_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed schema.sql
var schemaSQL string

// Open connects to PostgreSQL with the pool limits from cfg and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{
		"host": cfg.Host, "name": cfg.Name, "max_open_conns": cfg.MaxOpenConns,
	})
	return db, nil
}

// ApplySchema creates missing tables and indexes. It is safe to run on every start.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied successfully")
	return nil
}

// Status is the result of a health probe.
type Status struct {
	Connected                  bool
	ActivityLogsTable          bool
	InventoryTransactionsTable bool
}

// Probe reports connectivity and the presence of the audit tables.
// A nil db reports everything as missing.
func Probe(ctx context.Context, db *sqlx.DB) Status {
	var st Status
	if db == nil {
		return st
	}
	if err := db.PingContext(ctx); err != nil {
		return st
	}
	st.Connected = true
	if _, err := db.ExecContext(ctx, "SELECT 1 FROM activity_logs LIMIT 1"); err == nil {
		st.ActivityLogsTable = true
	}
	if _, err := db.ExecContext(ctx, "SELECT 1 FROM inventory_transactions LIMIT 1"); err == nil {
		st.InventoryTransactionsTable = true
	}
	return st
}
