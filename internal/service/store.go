package service

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/jask/lemonade/internal/config"
	"github.com/jask/lemonade/internal/database"
	"github.com/jask/lemonade/internal/database/repository"
	"github.com/jask/lemonade/internal/lifecycle"
	"github.com/jask/lemonade/internal/prefs"
)

// OpenStore builds the lifecycle store selected by cfg. The returned close
// func must be called once the store is no longer used.
func OpenStore(cfg config.StoreConfig) (lifecycle.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "memory":
		return lifecycle.NewMemoryStore(), noop, nil
	case "file":
		path := cfg.File
		if path == "" {
			p, err := prefs.DefaultPath()
			if err != nil {
				return nil, nil, errors.Wrap(err, "resolve snapshot path")
			}
			path = p
		}
		return prefs.NewFileStore(path), noop, nil
	case "sqlite", "":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "mkdir db dir")
		}
		if err := database.RunMigrations(cfg.Path); err != nil {
			return nil, nil, errors.Wrap(err, "migrate")
		}
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return database.NewStore(repository.NewSnapshotRepo(db), cfg.Slot), db.Close, nil
	default:
		return nil, nil, errors.Newf("unsupported store backend: %s", cfg.Backend)
	}
}
