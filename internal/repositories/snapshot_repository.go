package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"warehouse_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// SnapshotRepository persists whole-state snapshots in PostgreSQL.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, executor SQLExecutor, snapshot *models.Snapshot) (int64, error)
	GetLatestSnapshot(ctx context.Context) (*models.Snapshot, error)
}

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new instance of SnapshotRepository.
func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// SaveSnapshot inserts snapshot as a JSONB payload and returns the new row id.
func (r *snapshotRepository) SaveSnapshot(ctx context.Context, executor SQLExecutor, snapshot *models.Snapshot) (int64, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}

	query := `INSERT INTO warehouse_snapshots (payload, created_at) VALUES ($1, $2) RETURNING id`
	err = executor.QueryRowContext(ctx, query, payload, snapshot.CreatedAt).Scan(&snapshot.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, fmt.Errorf("%w: saving snapshot: %s (code: %s)", ErrDatabaseError, pqErr.Message, pqErr.Code)
		}
		return 0, fmt.Errorf("%w: saving snapshot: %v", ErrDatabaseError, err)
	}
	return snapshot.ID, nil
}

// GetLatestSnapshot loads the most recent snapshot.
func (r *snapshotRepository) GetLatestSnapshot(ctx context.Context) (*models.Snapshot, error) {
	query := `SELECT id, payload, created_at FROM warehouse_snapshots ORDER BY created_at DESC, id DESC LIMIT 1`
	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: loading latest snapshot: %v", ErrDatabaseError, err)
	}
	return snapshot, nil
}

func scanSnapshot(row scanner) (*models.Snapshot, error) {
	var (
		id      int64
		payload []byte
		snap    models.Snapshot
	)
	if err := row.Scan(&id, &payload, &snap.CreatedAt); err != nil {
		return nil, err
	}
	createdAt := snap.CreatedAt
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %d: %w", id, err)
	}
	snap.ID = id
	snap.CreatedAt = createdAt
	return &snap, nil
}
