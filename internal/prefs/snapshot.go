package prefs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/renameio/v2"

	"github.com/jask/lemonade/internal/lifecycle"
)

const snapshotFile = "snapshot.json"

// DefaultPath returns the snapshot file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lemonade", snapshotFile), nil
}

// FileStore keeps the snapshot in a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Save(_ context.Context, r lifecycle.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir snapshot dir")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	pending, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0o600))
	if err != nil {
		return errors.Wrap(err, "create pending snapshot")
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, "replace snapshot")
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (lifecycle.Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return lifecycle.Record{}, false, nil
		}
		return lifecycle.Record{}, false, err
	}
	var r lifecycle.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return lifecycle.Record{}, false, errors.Wrapf(err, "parse %s", s.path)
	}
	return r, true, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
