package lifecycle

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/jask/lemonade/internal/lemonade"
)

// Store persists one Record.
type Store interface {
	// Save replaces the stored record.
	Save(ctx context.Context, r Record) error
	// Load returns the stored record. ok is false when nothing was saved.
	Load(ctx context.Context) (r Record, ok bool, err error)
	// Clear forgets the stored record. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Slot is a record saved under a name.
type Slot struct {
	Name    string
	Record  Record
	SavedAt time.Time
}

// SlotLister is implemented by stores that keep several named records.
type SlotLister interface {
	Slots(ctx context.Context) ([]Slot, error)
}

// Resume restores m from the store. When nothing was saved m is left in
// whatever state it is in and resumed is false.
func Resume(ctx context.Context, s Store, m *lemonade.Machine) (resumed bool, err error) {
	r, ok, err := s.Load(ctx)
	if err != nil {
		return false, errors.Wrap(err, "load snapshot")
	}
	if !ok {
		return false, nil
	}
	st, err := Decode(r)
	if err != nil {
		return false, err
	}
	m.Restore(st)
	return true, nil
}

// Suspend writes the current state of m to the store.
func Suspend(ctx context.Context, s Store, m *lemonade.Machine) error {
	if err := s.Save(ctx, Encode(m.Snapshot())); err != nil {
		return errors.Wrap(err, "save snapshot")
	}
	return nil
}

// MemoryStore keeps the record in memory. It is used for ephemeral runs
// and tests.
type MemoryStore struct {
	rec *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, r Record) error {
	s.rec = &r
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Record, bool, error) {
	if s.rec == nil {
		return Record{}, false, nil
	}
	return *s.rec, true, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.rec = nil
	return nil
}
