package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// SnapshotRepo handles saved lemonade snapshots, one row per slot.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save inserts or replaces the snapshot for s.Slot. The row id is kept
// across updates.
func (r *SnapshotRepo) Save(ctx context.Context, s Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO snapshots(id, slot, stage, lemon_size, squeeze_count, saved_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET
	 stage=excluded.stage,
	 lemon_size=excluded.lemon_size,
	 squeeze_count=excluded.squeeze_count,
	 saved_at=excluded.saved_at;
	`, s.ID, s.Slot, s.Stage, s.LemonSize, s.SqueezeCount, s.SavedAt)
	return err
}

// Get returns the snapshot for slot, or nil if there is none.
func (r *SnapshotRepo) Get(ctx context.Context, slot string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, slot, stage, lemon_size, squeeze_count, saved_at FROM snapshots WHERE slot = ?`, slot)
	var s Snapshot
	if err := row.Scan(&s.ID, &s.Slot, &s.Stage, &s.LemonSize, &s.SqueezeCount, &s.SavedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// List returns every snapshot ordered by slot.
func (r *SnapshotRepo) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slot, stage, lemon_size, squeeze_count, saved_at FROM snapshots ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Slot, &s.Stage, &s.LemonSize, &s.SqueezeCount, &s.SavedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SnapshotRepo) Delete(ctx context.Context, slot string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE slot = ?`, slot)
	return err
}
