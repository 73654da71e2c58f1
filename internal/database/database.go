package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"warehouse_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Options describes how to reach PostgreSQL.
type Options struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// DSN renders the lib/pq connection string.
func (o Options) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		o.Host, o.Port, o.User, o.Password, o.Name, o.SSLMode)
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS warehouse_snapshots (
	id         BIGSERIAL PRIMARY KEY,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_warehouse_snapshots_created_at ON warehouse_snapshots (created_at DESC);
`

// Open connects to the database, checks the connection and makes sure the snapshot table exists.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"host": opts.Host, "db": opts.Name})

	if err := applySchema(ctx, db, opts.SchemaPath); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applySchema creates the snapshot table and, when schemaPath is set, runs that file as well.
func applySchema(ctx context.Context, db *sql.DB, schemaPath string) error {
	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("could not create snapshot table: %w", err)
	}
	if schemaPath == "" {
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err = db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied successfully", map[string]interface{}{"path": schemaPath})
	return nil
}
