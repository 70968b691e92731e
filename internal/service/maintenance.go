package service

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/jask/lemonade/internal/lifecycle"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	Store lifecycle.Store
}

// Reset forgets the saved snapshot so the next run starts at the lemon tree.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Store == nil {
		return errors.New("maintenance: store not configured")
	}
	if err := s.Store.Clear(ctx); err != nil {
		return errors.Wrap(err, "reset snapshot")
	}
	return nil
}
