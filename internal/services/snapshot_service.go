package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"
)

// ErrPersistenceDisabled is returned when snapshots are requested without a database.
var ErrPersistenceDisabled = errors.New("persistence is not enabled")

// SnapshotService saves and restores the in-memory state.
type SnapshotService interface {
	Enabled() bool
	SaveSnapshot(ctx context.Context) (*models.Snapshot, error)
	RestoreLatest(ctx context.Context) (bool, error)
}

type snapshotService struct {
	store        *repositories.Store
	snapshotRepo repositories.SnapshotRepository
	db           *sql.DB
}

// NewSnapshotService creates a new instance of SnapshotService. A nil db disables it.
func NewSnapshotService(store *repositories.Store, snapshotRepo repositories.SnapshotRepository, db *sql.DB) SnapshotService {
	return &snapshotService{store: store, snapshotRepo: snapshotRepo, db: db}
}

func (s *snapshotService) Enabled() bool {
	return s.db != nil && s.snapshotRepo != nil
}

// SaveSnapshot writes the current state to the database.
func (s *snapshotService) SaveSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if !s.Enabled() {
		return nil, ErrPersistenceDisabled
	}
	snap := s.store.Snapshot()
	start := time.Now()
	if _, err := s.snapshotRepo.SaveSnapshot(ctx, s.db, snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	utils.LogInfo("Snapshot saved", map[string]interface{}{
		"snapshot_id": snap.ID,
		"items":       len(snap.Items),
		"sales":       len(snap.Sales),
		"tasks":       len(snap.Tasks),
		"duration":    time.Since(start).String(),
	})
	return snap, nil
}

// RestoreLatest loads the newest snapshot into the store. It reports false when none exists.
func (s *snapshotService) RestoreLatest(ctx context.Context) (bool, error) {
	if !s.Enabled() {
		return false, ErrPersistenceDisabled
	}
	snap, err := s.snapshotRepo.GetLatestSnapshot(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading snapshot: %w", err)
	}
	s.store.Restore(snap)
	utils.LogInfo("Snapshot restored", map[string]interface{}{"snapshot_id": snap.ID, "created_at": snap.CreatedAt})
	return true, nil
}
