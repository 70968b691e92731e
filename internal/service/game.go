package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/jask/lemonade/internal/lemonade"
	"github.com/jask/lemonade/internal/lifecycle"
)

// GameService loads, plays and saves a lemonade session outside the TUI.
type GameService struct {
	Store  lifecycle.Store
	Random lemonade.RandomSource
	Log    zerolog.Logger
}

// Load returns a machine resumed from the store. A missing snapshot gives
// the initial state; a snapshot with an unknown stage is discarded with a
// warning and also gives the initial state.
func (s *GameService) Load(ctx context.Context) (*lemonade.Machine, error) {
	m := lemonade.New(s.Random)
	resumed, err := lifecycle.Resume(ctx, s.Store, m)
	switch {
	case errors.Is(err, lemonade.ErrUnknownStage):
		s.Log.Warn().Err(err).Msg("discarding unreadable snapshot")
		return m, nil
	case err != nil:
		return nil, err
	}
	if resumed {
		st := m.Snapshot()
		s.Log.Debug().Str("stage", st.Stage.String()).Int("lemon_size", st.LemonSize).Int("squeeze_count", st.SqueezeCount).Msg("resumed")
	}
	return m, nil
}

// Tap resumes the session, submits events in order and saves the result.
// Events that do not fit the stage they arrive in are ignored.
func (s *GameService) Tap(ctx context.Context, events ...lemonade.Event) (lemonade.State, error) {
	m, err := s.Load(ctx)
	if err != nil {
		return lemonade.State{}, err
	}
	for _, ev := range events {
		if !m.Submit(ev) {
			s.Log.Debug().Str("event", ev.String()).Str("stage", m.Snapshot().Stage.String()).Msg("tap ignored")
		}
	}
	if err := lifecycle.Suspend(ctx, s.Store, m); err != nil {
		return lemonade.State{}, err
	}
	return m.Snapshot(), nil
}
