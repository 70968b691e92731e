package database

import (
	"context"

	"github.com/jask/lemonade/internal/database/repository"
	"github.com/jask/lemonade/internal/lifecycle"
)

// DefaultSlot is the snapshot slot used when none is configured.
const DefaultSlot = "default"

// Store keeps one lifecycle record per slot in the snapshots table.
type Store struct {
	repo *repository.SnapshotRepo
	slot string
}

func NewStore(repo *repository.SnapshotRepo, slot string) *Store {
	if slot == "" {
		slot = DefaultSlot
	}
	return &Store{repo: repo, slot: slot}
}

func (s *Store) Save(ctx context.Context, r lifecycle.Record) error {
	return s.repo.Save(ctx, repository.Snapshot{
		Slot:         s.slot,
		Stage:        r.Stage,
		LemonSize:    r.LemonSize,
		SqueezeCount: r.SqueezeCount,
		SavedAt:      Now(),
	})
}

func (s *Store) Load(ctx context.Context) (lifecycle.Record, bool, error) {
	snap, err := s.repo.Get(ctx, s.slot)
	if err != nil || snap == nil {
		return lifecycle.Record{}, false, err
	}
	return lifecycle.Record{Stage: snap.Stage, LemonSize: snap.LemonSize, SqueezeCount: snap.SqueezeCount}, true, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.slot)
}

// Slots lists every saved slot, ordered by name.
func (s *Store) Slots(ctx context.Context) ([]lifecycle.Slot, error) {
	snaps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]lifecycle.Slot, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, lifecycle.Slot{
			Name:    snap.Slot,
			Record:  lifecycle.Record{Stage: snap.Stage, LemonSize: snap.LemonSize, SqueezeCount: snap.SqueezeCount},
			SavedAt: snap.SavedAt,
		})
	}
	return out, nil
}
